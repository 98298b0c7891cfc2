package controllers_fx

import (
	"go.uber.org/fx"

	"wayfarer/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewCountryController),
	fx.Provide(controllers.NewHealthController))
