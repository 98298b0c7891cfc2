package controllers

import (
	"github.com/gin-gonic/gin"

	"wayfarer/internal/services"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Current admin profile, month-over-month KPIs, growth series, travel style mix, latest trips and users
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response_models.DashboardReport
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/admin/dashboard [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	report, err := p.dashboardService.BuildDashboard(c.Request.Context(), middleware.GetAccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}

// GetStats godoc
// @Summary Get dashboard KPIs only
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response_models.DashboardStats
// @Router /api/admin/stats [get]
func (p *DashboardController) GetStats(c *gin.Context) {
	stats, err := p.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Stats fetched successfully")
}
