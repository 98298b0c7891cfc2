package controllers

import (
	"github.com/gin-gonic/gin"

	"wayfarer/internal/services"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/utils"
)

type AccountController struct {
	profileService services.ProfileServiceInterface
}

func NewAccountController(profileService services.ProfileServiceInterface) *AccountController {
	return &AccountController{
		profileService: profileService,
	}
}

// GetMe godoc
// @Summary Current profile
// @Tags Account
// @Produce json
// @Success 200 {object} response_models.ProfileResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/me [get]
func (a *AccountController) GetMe(c *gin.Context) {
	profile, err := a.profileService.GetProfile(c.Request.Context(), middleware.GetAccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

// ListUsers godoc
// @Summary List users
// @Description Paginated profiles with the number of itineraries each one created
// @Tags Account
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(8) minimum(1) maximum(100)
// @Success 200 {object} response_models.ProfilePage
// @Failure 403 {object} utils.APIResponse
// @Router /api/admin/users [get]
func (a *AccountController) ListUsers(c *gin.Context) {
	page, pageSize, err := utils.ParsePage(c.Query("page"), c.Query("pageSize"), utils.DefaultPageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	users, err := a.profileService.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Users fetched successfully")
}
