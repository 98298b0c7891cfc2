package services

import (
	"fmt"
	"strings"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

// ValidateTripRequest trims the form in place and reports the first invalid field.
func ValidateTripRequest(req *request_models.CreateTripRequest) error {
	if req == nil {
		return utils.ErrInvalidInput
	}

	req.Country = strings.TrimSpace(req.Country)
	req.TravelStyle = strings.TrimSpace(req.TravelStyle)
	req.Interests = strings.TrimSpace(req.Interests)
	req.Budget = strings.TrimSpace(req.Budget)
	req.GroupType = strings.TrimSpace(req.GroupType)

	if req.Country == "" || req.TravelStyle == "" || req.Interests == "" || req.Budget == "" || req.GroupType == "" {
		return utils.NewValidationError("form", "Please provide values for all fields")
	}

	if req.NumberOfDays < request_models.MinTripDays || req.NumberOfDays > request_models.MaxTripDays {
		return utils.NewValidationError("numberOfDays",
			fmt.Sprintf("Duration must be between %d and %d days", request_models.MinTripDays, request_models.MaxTripDays))
	}

	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"travelStyle", req.TravelStyle, request_models.TravelStyles},
		{"interests", req.Interests, request_models.Interests},
		{"budget", req.Budget, request_models.Budgets},
		{"groupType", req.GroupType, request_models.GroupTypes},
	}
	for _, c := range checks {
		if !containsFold(c.allowed, c.value) {
			return utils.NewValidationError(c.field, fmt.Sprintf("Unknown %s: %q", c.field, c.value))
		}
	}

	return nil
}

func containsFold(options []string, v string) bool {
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return true
		}
	}
	return false
}

type OptionsServiceInterface interface {
	GetTravelOptions() response_models.TravelOptions
}

type OptionsService struct{}

func NewOptionsService() OptionsServiceInterface {
	return &OptionsService{}
}

func (o *OptionsService) GetTravelOptions() response_models.TravelOptions {
	return response_models.TravelOptions{
		TravelStyles: append([]string(nil), request_models.TravelStyles...),
		Interests:    append([]string(nil), request_models.Interests...),
		Budgets:      append([]string(nil), request_models.Budgets...),
		GroupTypes:   append([]string(nil), request_models.GroupTypes...),
	}
}
