package request_models

// CreateTripRequest is the planner form. UserID is accepted for older clients but the
// session identity always wins.
type CreateTripRequest struct {
	Country      string `json:"country"`
	NumberOfDays int    `json:"numberOfDays"`
	TravelStyle  string `json:"travelStyle"`
	Interests    string `json:"interests"`
	Budget       string `json:"budget"`
	GroupType    string `json:"groupType"`
	UserID       string `json:"userId,omitempty"`
}

const (
	MinTripDays = 1
	MaxTripDays = 10
)

var (
	TravelStyles = []string{"Relaxed", "Luxury", "Adventure", "Cultural", "Nature & Outdoors", "City Exploration"}
	Interests    = []string{
		"Food & Culinary", "Historical Sites", "Hiking & Nature Walks", "Beaches & Water Activities",
		"Museums & Art", "Nightlife & Bars", "Photography Spots", "Shopping", "Local Experiences",
	}
	Budgets    = []string{"Budget", "Mid-range", "Luxury", "Premium"}
	GroupTypes = []string{"Solo", "Couple", "Family", "Friends", "Business"}
)
