package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type ProfileRepository interface {
	Insert(ctx context.Context, profile *db_models.Profile) error
	FindByAccountID(ctx context.Context, accountID string) (*db_models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]db_models.Profile, int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (p *profileRepository) Insert(ctx context.Context, profile *db_models.Profile) error {
	return p.db.WithContext(ctx).Create(profile).Error
}

func (p *profileRepository) FindByAccountID(ctx context.Context, accountID string) (*db_models.Profile, error) {
	var profile db_models.Profile
	err := p.db.WithContext(ctx).First(&profile, "account_id = ?", accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (p *profileRepository) List(ctx context.Context, limit, offset int) ([]db_models.Profile, int64, error) {
	var total int64
	if err := p.db.WithContext(ctx).Model(&db_models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []db_models.Profile
	err := p.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
