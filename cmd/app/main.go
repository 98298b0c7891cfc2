package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"wayfarer/cmd/fx/account_fx"
	"wayfarer/cmd/fx/config_fx"
	"wayfarer/cmd/fx/controllers_fx"
	"wayfarer/cmd/fx/country_fx"
	"wayfarer/cmd/fx/dashboard"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/memcache_fx"
	"wayfarer/cmd/fx/prompt_fx"
	"wayfarer/cmd/fx/trip_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/internal/config"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/observability"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		prompt_fx.Module,
		trip_fx.Module,
		account_fx.Module,
		dashboard.Module,
		country_fx.Module,
		controllers_fx.Module,

		fx.Provide(observability.InitRegistry),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.TraceHeader},
		ExposedHeaders:   []string{middleware.TraceHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           corsHandler.Handler(engine),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type routerParams struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	AdminAuth middleware.AdminAuthorizer

	Trip      *controllers.TripController
	Dashboard *controllers.DashboardController
	Account   *controllers.AccountController
	Auth      *controllers.AuthController
	Country   *controllers.CountryController
	Health    *controllers.HealthController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if !p.Config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/healthz", p.Health.Healthz)
	r.GET("/metrics", gin.WrapH(observability.MetricsHandler(p.Registry)))

	authGroup := r.Group("/auth")
	authGroup.GET("/sign-in", p.Auth.SignIn)
	authGroup.GET("/callback", p.Auth.Callback)
	authGroup.POST("/sign-out", p.Auth.SignOut)

	redirects := middleware.NewRedirects(p.Config.Server.WebAppURL)
	session := middleware.SessionMiddleware(middleware.SessionOptions{
		Secret:     []byte(p.Config.Auth.JWTSecret),
		CookieName: p.Config.Auth.CookieName,
		Redirects:  redirects,
	})
	adminOnly := middleware.AdminOnly(p.AdminAuth, redirects)

	r.GET("/admin", session, adminOnly, p.Auth.OpenDashboard)

	api := r.Group("/api")
	api.GET("/options", p.Country.ListOptions)
	api.GET("/countries", p.Country.ListCountries)
	api.GET("/trips", p.Trip.ListTrips)
	api.GET("/trips/:tripId", p.Trip.GetTripDetail)

	authed := api.Group("", session)
	authed.POST("/create-trip", p.Trip.CreateTrip)
	authed.GET("/me", p.Account.GetMe)
	authed.GET("/me/trips", p.Trip.ListMyTrips)

	admin := authed.Group("/admin", adminOnly)
	admin.GET("/dashboard", p.Dashboard.GetDashboard)
	admin.GET("/stats", p.Dashboard.GetStats)
	admin.GET("/users", p.Account.ListUsers)
}
