package response_models

// TripCard is the compact form rendered in trip grids.
type TripCard struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ImageURL       string   `json:"imageUrl"`
	Location       string   `json:"location"`
	Tags           []string `json:"tags"`
	TravelStyle    string   `json:"travelStyle"`
	EstimatedPrice string   `json:"estimatedPrice"`
}

type TripPage struct {
	Trips    []TripCard `json:"trips"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

type TripDetailResponse struct {
	Trip         Itinerary  `json:"trip"`
	SimilarTrips []TripCard `json:"similarTrips"`
}

// CreateTripResponse is the wire contract of the create-trip action: {id} or {error}.
type CreateTripResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}
