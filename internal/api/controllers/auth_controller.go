package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wayfarer/internal/config"
	"wayfarer/internal/services"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/utils"
)

const dashboardPage = "/dashboard"

type AuthController struct {
	authService services.AuthServiceInterface
	cfg         *config.Config
	redirects   middleware.Redirects
}

func NewAuthController(authService services.AuthServiceInterface, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: authService,
		cfg:         cfg,
		redirects:   middleware.NewRedirects(cfg.Server.WebAppURL),
	}
}

// SignIn godoc
// @Summary Start Google sign-in
// @Tags Auth
// @Param redirect query string false "Path to return to after sign-in"
// @Success 302
// @Failure 503 {object} utils.APIResponse
// @Router /auth/sign-in [get]
func (a *AuthController) SignIn(c *gin.Context) {
	consentURL, err := a.authService.BeginSignIn(c.Request.Context(), c.Query("redirect"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, consentURL)
}

// Callback godoc
// @Summary Google OAuth callback
// @Tags Auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State issued by sign-in"
// @Success 302
// @Failure 400 {object} utils.APIResponse
// @Router /auth/callback [get]
func (a *AuthController) Callback(c *gin.Context) {
	token, redirect, err := a.authService.CompleteSignIn(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		zap.L().Warn("sign-in failed", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		utils.HandleServiceError(c, err)
		return
	}

	a.setSessionCookie(c, token, int(a.cfg.Auth.SessionTTL.Seconds()))
	c.Redirect(http.StatusFound, redirect)
}

// SignOut godoc
// @Summary Sign out
// @Tags Auth
// @Success 302
// @Router /auth/sign-out [post]
func (a *AuthController) SignOut(c *gin.Context) {
	a.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, a.redirects.SignIn)
}

// OpenDashboard godoc
// @Summary Admin dashboard entry
// @Description Runs the admin gate, then forwards to the web app dashboard.
// @Tags Auth
// @Success 302
// @Router /admin [get]
func (a *AuthController) OpenDashboard(c *gin.Context) {
	c.Redirect(http.StatusFound, strings.TrimRight(a.cfg.Server.WebAppURL, "/")+dashboardPage)
}

func (a *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cfg.Auth.CookieName, value, maxAge, "/", "", a.cfg.Auth.SecureCookie, true)
}
