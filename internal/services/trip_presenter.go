package services

import (
	"encoding/json"

	dbm "wayfarer/internal/models/db_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

func BuildTripCard(trip dbm.Trip) response_models.TripCard {
	image := ""
	if len(trip.ImageURLs) > 0 {
		image = trip.ImageURLs[0]
	}

	tags := make([]string, 0, len(trip.Interests)+1)
	tags = append(tags, trip.Interests...)
	if trip.TravelStyle != "" {
		tags = append(tags, trip.TravelStyle)
	}

	return response_models.TripCard{
		ID:             trip.ID.String(),
		Name:           trip.Name,
		ImageURL:       image,
		Location:       trip.Country,
		Tags:           tags,
		TravelStyle:    trip.TravelStyle,
		EstimatedPrice: trip.EstimatedPrice,
	}
}

func BuildTripCards(trips []dbm.Trip) []response_models.TripCard {
	out := make([]response_models.TripCard, 0, len(trips))
	for _, t := range trips {
		out = append(out, BuildTripCard(t))
	}
	return out
}

// BuildItinerary reconstitutes the stored blob and overlays the columns owned by the store.
func BuildItinerary(trip dbm.Trip) (*response_models.Itinerary, error) {
	var it response_models.Itinerary
	if err := json.Unmarshal([]byte(trip.TripDetail), &it); err != nil {
		return nil, err
	}

	it.ID = trip.ID.String()
	it.ImageURLs = append([]string{}, trip.ImageURLs...)
	it.CreatedAt = utils.FormatRFC3339(utils.FromUnixSeconds(trip.CreatedAt))
	return &it, nil
}
