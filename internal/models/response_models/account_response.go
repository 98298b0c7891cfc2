package response_models

type ProfileResponse struct {
	ID             string `json:"id"`
	AccountID      string `json:"accountId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	AvatarURL      string `json:"imageUrl"`
	JoinedAt       string `json:"joinedAt"`
	Role           string `json:"status"`
	ItineraryCount int64  `json:"itineraryCreated"`
}

type ProfilePage struct {
	Users    []ProfileResponse `json:"users"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}
