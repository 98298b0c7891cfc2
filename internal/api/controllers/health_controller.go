package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wayfarer/pkg/utils"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /healthz [get]
func (h *HealthController) Healthz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	utils.RespondSuccess(c, gin.H{"status": "ok"}, "healthy")
}
