package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// BuildItineraryPrompt asks the model for a single fenced JSON block shaped like response_models.Itinerary.
func BuildItineraryPrompt(req request_models.CreateTripRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a %d-day travel itinerary for %s based on the following user information:\n", req.NumberOfDays, req.Country)
	fmt.Fprintf(&b, "Budget: '%s'\n", req.Budget)
	fmt.Fprintf(&b, "Interests: '%s'\n", req.Interests)
	fmt.Fprintf(&b, "TravelStyle: '%s'\n", req.TravelStyle)
	fmt.Fprintf(&b, "GroupType: '%s'\n", req.GroupType)
	b.WriteString("Return the itinerary and lowest estimated price in a clean, non-markdown JSON format with the following structure,\n")
	b.WriteString("wrapped in a single ```json fenced block and nothing else:\n")
	b.WriteString("```json\n")
	fmt.Fprintf(&b, `{
  "name": "A descriptive title for the trip",
  "description": "A brief description of the trip and its highlights not exceeding 100 words",
  "estimatedPrice": "Lowest average price for the trip in USD, e.g.$price",
  "duration": %d,
  "budget": "%s",
  "travelStyle": "%s",
  "country": "%s",
  "interests": "%s",
  "groupType": "%s",
  "bestTimeToVisit": [
    "🌸 Season (from month to month): reason to visit",
    "☀️ Season (from month to month): reason to visit",
    "🍁 Season (from month to month): reason to visit",
    "❄️ Season (from month to month): reason to visit"
  ],
  "weatherInfo": [
    "☀️ Season: temperature range in Celsius (temperature range in Fahrenheit)",
    "🌦️ Season: temperature range in Celsius (temperature range in Fahrenheit)",
    "🌧️ Season: temperature range in Celsius (temperature range in Fahrenheit)",
    "❄️ Season: temperature range in Celsius (temperature range in Fahrenheit)"
  ],
  "location": {
    "city": "name of the city or region",
    "coordinates": [latitude, longitude],
    "openStreetMap": "link to open street map"
  },
  "itinerary": [
    {
      "day": 1,
      "location": "City/Region Name",
      "theme": "Theme of the day",
      "activities": [
        {"time": "Morning", "title": "Activity", "description": "What to do", "estimatedCost": "$20", "tip": "Insider tip"},
        {"time": "Afternoon", "title": "Activity", "description": "What to do", "estimatedCost": "$20", "tip": "Insider tip"},
        {"time": "Evening", "title": "Activity", "description": "What to do", "estimatedCost": "$20", "tip": "Insider tip"}
      ],
      "meals": {"breakfast": "Suggestion", "lunch": "Suggestion", "dinner": "Suggestion"}
    }
  ]
}
`, req.NumberOfDays, req.Budget, req.TravelStyle, req.Country, req.Interests, req.GroupType)
	b.WriteString("```\n")
	fmt.Fprintf(&b, "The \"itinerary\" array must contain exactly %d days.\n", req.NumberOfDays)

	return b.String()
}

// ExtractItinerary parses the first ```json block of a model reply. It returns nil when the
// block is missing, malformed or has no days.
func ExtractItinerary(reply string) *response_models.Itinerary {
	match := fencedJSON.FindStringSubmatch(reply)
	if len(match) < 2 {
		zap.L().Error("model reply has no fenced json block", zap.Int("reply_len", len(reply)))
		return nil
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(match[1]), &itinerary); err != nil {
		zap.L().Error("failed to parse itinerary json", zap.Error(err))
		return nil
	}

	if len(itinerary.Itinerary) == 0 {
		zap.L().Error("itinerary json has no days")
		return nil
	}

	return &itinerary
}

// imageQuery is the photo-search keyword string for a trip.
func imageQuery(req request_models.CreateTripRequest) string {
	return strings.Join([]string{req.Country, req.Interests, req.TravelStyle}, " ")
}

// embeddingText summarises a trip for similarity search.
func embeddingText(it *response_models.Itinerary) string {
	parts := []string{it.Name, it.Description, it.Country, it.Location.City, it.TravelStyle, it.Interests, it.Budget, it.GroupType}
	for _, d := range it.Itinerary {
		parts = append(parts, d.Theme)
	}
	return strings.Join(parts, " ")
}
