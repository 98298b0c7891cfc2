package country_fx

import (
	"go.uber.org/fx"

	"wayfarer/internal/services"
)

var Module = fx.Provide(
	services.NewCountryService,
	services.NewOptionsService)
