package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"wayfarer/internal/config"
	dbm "wayfarer/internal/models/db_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, accountID string) (*response_models.ProfileResponse, error)
	EnsureProfile(ctx context.Context, identity ExternalUser) (*dbm.Profile, error)
	ListUsers(ctx context.Context, page, pageSize int) (*response_models.ProfilePage, error)
}

type ProfileService struct {
	profileRepo repositories.ProfileRepository
	tripRepo    repositories.TripRepository
	adminEmails map[string]struct{}
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	tripRepo repositories.TripRepository,
	cfg *config.Config,
) ProfileServiceInterface {
	admins := make(map[string]struct{}, len(cfg.Auth.AdminEmails))
	for _, e := range cfg.Auth.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &ProfileService{
		profileRepo: profileRepo,
		tripRepo:    tripRepo,
		adminEmails: admins,
	}
}

func BuildProfileResponse(p dbm.Profile, itineraries int64) response_models.ProfileResponse {
	return response_models.ProfileResponse{
		ID:             p.ID.String(),
		AccountID:      p.AccountID,
		Name:           p.Name,
		Email:          p.Email,
		AvatarURL:      p.AvatarURL,
		JoinedAt:       utils.FormatRFC3339(utils.FromUnixSeconds(p.CreatedAt)),
		Role:           string(p.Role),
		ItineraryCount: itineraries,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, accountID string) (*response_models.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}

	counts, err := s.tripRepo.CountByAccounts(ctx, []string{accountID})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := BuildProfileResponse(*profile, counts[accountID])
	return &out, nil
}

// EnsureProfile returns the stored profile for identity, creating it on first sign-in.
func (s *ProfileService) EnsureProfile(ctx context.Context, identity ExternalUser) (*dbm.Profile, error) {
	existing, err := s.profileRepo.FindByAccountID(ctx, identity.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		if !existing.Role.Valid() {
			zap.L().Error("stored profile has an unknown role",
				zap.String("account_id", existing.AccountID), zap.String("role", string(existing.Role)))
			return nil, utils.ErrInvalidRole
		}
		return existing, nil
	}

	role := dbm.RoleUser
	if _, ok := s.adminEmails[strings.ToLower(identity.Email)]; ok {
		role = dbm.RoleAdmin
	}

	profile := &dbm.Profile{
		AccountID: identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		AvatarURL: identity.Picture,
		Role:      role,
	}
	if err := s.profileRepo.Insert(ctx, profile); err != nil {
		zap.L().Error("failed to create profile", zap.String("account_id", identity.ID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	zap.L().Info("profile created", zap.String("account_id", identity.ID), zap.String("role", string(role)))
	return profile, nil
}

func (s *ProfileService) ListUsers(ctx context.Context, page, pageSize int) (*response_models.ProfilePage, error) {
	profiles, total, err := s.profileRepo.List(ctx, pageSize, utils.Offset(page, pageSize))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.AccountID)
	}
	counts, err := s.tripRepo.CountByAccounts(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	users := make([]response_models.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, BuildProfileResponse(p, counts[p.AccountID]))
	}

	return &response_models.ProfilePage{
		Users:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
