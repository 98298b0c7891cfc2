package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfarer/internal/config"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/middleware"
)

var Module = fx.Provide(
	provideProfileRepo,
	services.NewProfileService,
	provideIdentityProvider,
	services.NewAuthService,
	provideAdminAuthorizer)

func provideProfileRepo(db *gorm.DB) repositories.ProfileRepository {
	return repositories.NewProfileRepository(db)
}

func provideIdentityProvider(cfg *config.Config) services.IdentityProvider {
	return services.NewGoogleIdentityProvider(cfg)
}

func provideAdminAuthorizer(authService services.AuthServiceInterface) middleware.AdminAuthorizer {
	return authService
}
