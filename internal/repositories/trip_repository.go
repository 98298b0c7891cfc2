package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "wayfarer/internal/models/db_models"
)

type TripRepository interface {
	Create(ctx context.Context, trip *dbm.Trip) (uuid.UUID, error)
	GetByID(ctx context.Context, id string) (*dbm.Trip, error)
	List(ctx context.Context, limit, offset int) ([]dbm.Trip, int64, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]dbm.Trip, int64, error)
	ListSimilar(ctx context.Context, embedding pgvector.Vector, excludeID uuid.UUID, limit int) ([]dbm.Trip, error)
	CountByAccounts(ctx context.Context, accountIDs []string) (map[string]int64, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *dbm.Trip) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return uuid.Nil, err
	}
	return trip.ID, nil
}

func (r *tripRepository) GetByID(ctx context.Context, id string) (*dbm.Trip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var trip dbm.Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) List(ctx context.Context, limit, offset int) ([]dbm.Trip, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&dbm.Trip{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Omit("embedding").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (r *tripRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]dbm.Trip, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Omit("embedding").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// ListSimilar orders trips by cosine distance to embedding, closest first.
func (r *tripRepository) ListSimilar(ctx context.Context, embedding pgvector.Vector, excludeID uuid.UUID, limit int) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Omit("embedding").
		Where("id <> ? AND embedding IS NOT NULL", excludeID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{embedding}},
		}).
		Limit(limit).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

type accountCountRow struct {
	AccountID string `gorm:"column:account_id"`
	Count     int64  `gorm:"column:count"`
}

func (r *tripRepository) CountByAccounts(ctx context.Context, accountIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}

	var rows []accountCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Select("account_id, COUNT(*) AS count").
		Where("account_id IN ?", accountIDs).
		Group("account_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.AccountID] = row.Count
	}
	return out, nil
}
