package response_models

type Trend string

const (
	TrendIncrement Trend = "increment"
	TrendDecrement Trend = "decrement"
	TrendNoChange  Trend = "no change"
)

type TrendResult struct {
	Trend      Trend   `json:"trend"`
	Percentage float64 `json:"percentage"`
}

// MonthlyCount is a month-over-month KPI.
type MonthlyCount struct {
	Total        int64       `json:"total"`
	CurrentMonth int64       `json:"currentMonth"`
	LastMonth    int64       `json:"lastMonth"`
	Trend        TrendResult `json:"trend"`
}

// DashboardStats is derived on every load and never persisted.
type DashboardStats struct {
	TotalUsers   int64        `json:"totalUsers"`
	UsersJoined  MonthlyCount `json:"usersJoined"`
	TotalTrips   int64        `json:"totalTrips"`
	TripsCreated MonthlyCount `json:"tripsCreated"`
	UserRole     MonthlyCount `json:"userRole"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type TravelStyleCount struct {
	TravelStyle string `json:"travelStyle"`
	Count       int64  `json:"count"`
}

type DashboardReport struct {
	User         ProfileResponse    `json:"user"`
	Stats        DashboardStats     `json:"stats"`
	RecentTrips  []TripCard         `json:"allTrips"`
	UserGrowth   []DailyCount       `json:"userGrowth"`
	TripGrowth   []DailyCount       `json:"tripGrowth"`
	TripsByStyle []TravelStyleCount `json:"tripsByTravelStyle"`
	LatestUsers  []ProfileResponse  `json:"allUsers"`
}
