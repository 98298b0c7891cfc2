package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Trip is a generated itinerary. TripDetail holds the serialized itinerary JSON;
// the other columns are metadata copied out of it for filtering and counting.
type Trip struct {
	BaseModel
	AccountID      string `gorm:"index;not null"`
	Name           string
	Country        string         `gorm:"index"`
	TravelStyle    string         `gorm:"index"`
	Interests      pq.StringArray `gorm:"type:text[]"`
	Budget         string
	GroupType      string
	Duration       int
	EstimatedPrice string
	TripDetail     string           `gorm:"type:text;not null"`
	ImageURLs      pq.StringArray   `gorm:"type:text[]"`
	Embedding      *pgvector.Vector `gorm:"type:vector(1536)"`
}
