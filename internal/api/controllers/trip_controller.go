package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary Generate a trip
// @Description Generate an itinerary from the planner form, attach photos and store it
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip preferences"
// @Success 200 {object} response_models.CreateTripResponse
// @Failure 400 {object} response_models.CreateTripResponse
// @Failure 401 {object} response_models.CreateTripResponse
// @Failure 502 {object} response_models.CreateTripResponse
// @Router /api/create-trip [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response_models.CreateTripResponse{Error: "Invalid request body"})
		return
	}

	accountID := middleware.GetAccountID(c)
	if req.UserID != "" && req.UserID != accountID {
		zap.L().Warn("ignoring userId from request body", zap.String("account_id", accountID))
	}

	id, err := t.tripService.CreateTrip(c.Request.Context(), accountID, req)
	if err != nil {
		code, message := utils.StatusAndMessage(err)
		c.JSON(code, response_models.CreateTripResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, response_models.CreateTripResponse{ID: id})
}

// ListTrips godoc
// @Summary List trips
// @Description Paginated trip cards, newest first
// @Tags Trip
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(8) minimum(1) maximum(100)
// @Success 200 {object} response_models.TripPage
// @Failure 400 {object} utils.APIResponse
// @Router /api/trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	page, pageSize, err := utils.ParsePage(c.Query("page"), c.Query("pageSize"), utils.DefaultPageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	trips, err := t.tripService.GetTrips(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// ListMyTrips godoc
// @Summary List my trips
// @Tags Trip
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(8) minimum(1) maximum(100)
// @Success 200 {object} response_models.TripPage
// @Router /api/me/trips [get]
func (t *TripController) ListMyTrips(c *gin.Context) {
	page, pageSize, err := utils.ParsePage(c.Query("page"), c.Query("pageSize"), utils.DefaultPageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	trips, err := t.tripService.GetTripsByAccount(c.Request.Context(), middleware.GetAccountID(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTripDetail godoc
// @Summary Get trip details
// @Description Day-by-day itinerary, images and similar trips
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/trips/{tripId} [get]
func (t *TripController) GetTripDetail(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	detail, err := t.tripService.GetTripDetail(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Trip details fetched successfully")
}
