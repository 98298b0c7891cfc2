package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wayfarer/internal/models/request_models"
)

const validReply = "Here is your plan:\n```json\n" + `{
  "name": "Kyoto Food Trail",
  "description": "Three days of eating.",
  "estimatedPrice": "$900",
  "duration": 3,
  "budget": "Mid-range",
  "travelStyle": "Cultural",
  "country": "Japan",
  "interests": "Food & Culinary",
  "groupType": "Couple",
  "bestTimeToVisit": ["🌸 Spring (March to May): blossoms"],
  "weatherInfo": ["☀️ Summer: 25-33°C (77-91°F)"],
  "location": {"city": "Kyoto", "coordinates": [35.01, 135.76], "openStreetMap": "https://osm.org"},
  "itinerary": [
    {"day": 1, "location": "Gion", "theme": "Old town",
     "activities": [
       {"time": "Morning", "title": "Nishiki Market", "description": "Graze", "estimatedCost": "$20", "tip": "Go early"},
       {"time": "Afternoon", "title": "Tea", "description": "Ceremony", "estimatedCost": "$40", "tip": "Book ahead"},
       {"time": "Evening", "title": "Pontocho", "description": "Dinner", "estimatedCost": "$60", "tip": "Cash only"}
     ],
     "meals": {"breakfast": "Onigiri", "lunch": "Ramen", "dinner": "Kaiseki"}}
  ]
}` + "\n```\nEnjoy!"

func TestExtractItinerary(t *testing.T) {
	it := ExtractItinerary(validReply)
	require.NotNil(t, it)

	assert.Equal(t, "Kyoto Food Trail", it.Name)
	assert.Equal(t, 3, it.Duration)
	assert.Equal(t, "Kyoto", it.Location.City)
	assert.Equal(t, []float64{35.01, 135.76}, it.Location.Coordinates)
	require.Len(t, it.Itinerary, 1)
	require.Len(t, it.Itinerary[0].Activities, 3)
	assert.Equal(t, "Evening", it.Itinerary[0].Activities[2].Time)
	assert.Equal(t, "Ramen", it.Itinerary[0].Meals.Lunch)
}

func TestExtractItineraryRejects(t *testing.T) {
	const (
		noBlock = "model reply has no fenced json block"
		badJSON = "failed to parse itinerary json"
		noDays  = "itinerary json has no days"
	)
	tests := map[string]struct {
		reply   string
		wantLog string
	}{
		"no fence":     {`{"name": "x", "itinerary": [{"day": 1}]}`, noBlock},
		"wrong fence":  {"```\n{\"name\": \"x\", \"itinerary\": [{\"day\": 1}]}\n```", noBlock},
		"invalid json": {"```json\n{\"name\": \"x\",,}\n```", badJSON},
		"no days":      {"```json\n{\"name\": \"x\", \"itinerary\": []}\n```", noDays},
		"empty reply":  {"", noBlock},
		"unclosed":     {"```json\n{\"name\": \"x\"}", noBlock},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			logs := observeLogs(t)

			assert.Nil(t, ExtractItinerary(tt.reply))

			errs := logs.FilterLevelExact(zap.ErrorLevel).All()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantLog, errs[0].Message)
		})
	}
}

func TestBuildItineraryPrompt(t *testing.T) {
	req := request_models.CreateTripRequest{
		Country: "Japan", NumberOfDays: 3, TravelStyle: "Cultural",
		Interests: "Food & Culinary", Budget: "Mid-range", GroupType: "Couple",
	}
	p := BuildItineraryPrompt(req)

	assert.Contains(t, p, "3-day travel itinerary for Japan")
	assert.Contains(t, p, "```json")
	assert.Contains(t, p, `"groupType": "Couple"`)
	assert.Contains(t, p, "exactly 3 days")
}

func TestValidateTripRequest(t *testing.T) {
	valid := func() request_models.CreateTripRequest {
		return request_models.CreateTripRequest{
			Country: " Japan ", NumberOfDays: 5, TravelStyle: "Cultural",
			Interests: "Food & Culinary", Budget: "Mid-range", GroupType: "Couple",
		}
	}

	req := valid()
	require.NoError(t, ValidateTripRequest(&req))
	assert.Equal(t, "Japan", req.Country)

	tests := []struct {
		name   string
		mutate func(r *request_models.CreateTripRequest)
		msg    string
	}{
		{"blank country", func(r *request_models.CreateTripRequest) { r.Country = "  " }, "Please provide values for all fields"},
		{"zero days", func(r *request_models.CreateTripRequest) { r.NumberOfDays = 0 }, "Duration must be between 1 and 10 days"},
		{"too many days", func(r *request_models.CreateTripRequest) { r.NumberOfDays = 11 }, "Duration must be between 1 and 10 days"},
		{"unknown style", func(r *request_models.CreateTripRequest) { r.TravelStyle = "Party" }, `Unknown travelStyle: "Party"`},
		{"unknown budget", func(r *request_models.CreateTripRequest) { r.Budget = "Free" }, `Unknown budget: "Free"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := ValidateTripRequest(&r)
			require.Error(t, err)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}
