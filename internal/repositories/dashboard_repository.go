package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "wayfarer/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountProfiles(ctx context.Context) (int64, error)
	CountProfilesJoined(ctx context.Context, start, end time.Time) (int64, error)
	CountProfilesByRole(ctx context.Context, role dbm.Role) (int64, error)
	CountProfilesByRoleJoined(ctx context.Context, role dbm.Role, start, end time.Time) (int64, error)
	CountTrips(ctx context.Context) (int64, error)
	CountTripsCreated(ctx context.Context, start, end time.Time) (int64, error)

	// Time series
	NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	NewTripsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	TripsByTravelStyle(ctx context.Context) ([]TravelStyleRow, error)
	RecentTrips(ctx context.Context, limit int) ([]dbm.Trip, error)
	LatestProfiles(ctx context.Context, limit int) ([]dbm.Profile, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type TravelStyleRow struct {
	TravelStyle string `gorm:"column:travel_style"`
	Count       int64  `gorm:"column:count"`
}

// ---------- Helpers ----------

// dateTrunc buckets a column holding UNIX seconds, e.g.
// date_trunc('day', timezone('UTC', to_timestamp(created_at))).
func dateTrunc(tz string, unixColumn string) string {
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func truncArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}

// ---------- Counts ----------
func (r *dashboardRepository) CountProfiles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Profile{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountProfilesJoined(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Profile{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountProfilesByRole(ctx context.Context, role dbm.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Profile{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountProfilesByRoleJoined(ctx context.Context, role dbm.Role, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Profile{}).
		Where("role = ?", role).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTrips(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Trip{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTripsCreated(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

// ---------- Series ----------
func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	return r.series(ctx, "profiles", start, end, interval, tz)
}

func (r *dashboardRepository) NewTripsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	return r.series(ctx, "trips", start, end, interval, tz)
}

func (r *dashboardRepository) series(ctx context.Context, table string, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	tx := r.db.WithContext(ctx).
		Table(table).
		Select(dateTrunc(tz, "created_at")+" AS bucket, COUNT(*) AS sum", truncArgs(interval, tz)...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

// ---------- Breakdown ----------
func (r *dashboardRepository) TripsByTravelStyle(ctx context.Context) ([]TravelStyleRow, error) {
	var rows []TravelStyleRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Select("travel_style, COUNT(*) AS count").
		Where("travel_style <> ''").
		Group("travel_style").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

// ---------- Recent ----------
func (r *dashboardRepository) RecentTrips(ctx context.Context, limit int) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Omit("embedding").
		Order("created_at DESC").
		Limit(limit).
		Find(&trips).Error
	return trips, err
}

func (r *dashboardRepository) LatestProfiles(ctx context.Context, limit int) ([]dbm.Profile, error) {
	var profiles []dbm.Profile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}
