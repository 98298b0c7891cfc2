package response_models

// Itinerary is the structured travel plan produced by the model and stored as the trip blob.
type Itinerary struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	EstimatedPrice  string    `json:"estimatedPrice"`
	Duration        int       `json:"duration"`
	Budget          string    `json:"budget"`
	TravelStyle     string    `json:"travelStyle"`
	Country         string    `json:"country"`
	Interests       string    `json:"interests"`
	GroupType       string    `json:"groupType"`
	BestTimeToVisit []string  `json:"bestTimeToVisit"`
	WeatherInfo     []string  `json:"weatherInfo"`
	Location        Location  `json:"location"`
	Itinerary       []DayPlan `json:"itinerary"`
	ImageURLs       []string  `json:"imageUrls"`
	CreatedAt       string    `json:"createdAt,omitempty"`
}

type Location struct {
	City          string    `json:"city"`
	Coordinates   []float64 `json:"coordinates"`
	OpenStreetMap string    `json:"openStreetMap"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Location   string     `json:"location"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
	Meals      Meals      `json:"meals"`
}

// Activity is one time-of-day slot: Morning, Afternoon or Evening.
type Activity struct {
	Time          string `json:"time"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EstimatedCost string `json:"estimatedCost"`
	Tip           string `json:"tip"`
}

type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}
