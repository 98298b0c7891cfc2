package controllers

import (
	"github.com/gin-gonic/gin"

	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type CountryController struct {
	countryService services.CountryServiceInterface
	optionsService services.OptionsServiceInterface
}

func NewCountryController(countryService services.CountryServiceInterface, optionsService services.OptionsServiceInterface) *CountryController {
	return &CountryController{
		countryService: countryService,
		optionsService: optionsService,
	}
}

// ListCountries godoc
// @Summary Countries for the planner form
// @Tags Reference
// @Produce json
// @Success 200 {array} response_models.Country
// @Failure 502 {object} utils.APIResponse
// @Router /api/countries [get]
func (cc *CountryController) ListCountries(c *gin.Context) {
	countries, err := cc.countryService.GetCountries(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, countries, "Fetched countries successfully")
}

// ListOptions godoc
// @Summary Travel styles, interests, budgets and group types
// @Tags Reference
// @Produce json
// @Success 200 {object} response_models.TravelOptions
// @Router /api/options [get]
func (cc *CountryController) ListOptions(c *gin.Context) {
	utils.RespondSuccess(c, cc.optionsService.GetTravelOptions(), "Fetched options successfully")
}
