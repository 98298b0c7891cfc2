package response_models

type Country struct {
	Name          string    `json:"name"`
	Flag          string    `json:"flag"`
	Value         string    `json:"value"`
	Coordinates   []float64 `json:"coordinates"`
	OpenStreetMap string    `json:"openStreetMap,omitempty"`
}

type TravelOptions struct {
	TravelStyles []string `json:"travelStyles"`
	Interests    []string `json:"interests"`
	Budgets      []string `json:"budgets"`
	GroupTypes   []string `json:"groupTypes"`
}
