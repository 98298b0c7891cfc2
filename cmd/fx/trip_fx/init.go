package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfarer/internal/config"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Provide(
	provideTripRepo,
	provideImageSearcher,
	services.NewTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideImageSearcher(cfg *config.Config) services.ImageSearcher {
	return services.NewUnsplashClient(cfg.Unsplash.BaseURL, cfg.Unsplash.AccessKey, cfg.Unsplash.RPS)
}
