package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbm "wayfarer/internal/models/db_models"
)

// sqlRecorder keeps every statement gorm builds, with its arguments inlined.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.statements)
	return r.statements[len(r.statements)-1]
}

// dryRunDB builds statements for postgres without a server.
func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=wayfarer dbname=wayfarer sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db, rec
}

var (
	marchStart = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	marchNow   = time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
)

func between(start, end time.Time) string {
	return fmt.Sprintf("created_at BETWEEN %d AND %d", start.Unix(), end.Unix())
}

func TestDashboardCounts(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	_, err := repo.CountProfilesByRole(ctx, dbm.RoleUser)
	require.NoError(t, err)
	sql := rec.last(t)
	assert.Contains(t, sql, `SELECT count(*) FROM "profiles"`)
	assert.Contains(t, sql, "role = 'user'")
	assert.Contains(t, sql, `"profiles"."deleted_at" IS NULL`)
	assert.NotContains(t, sql, "BETWEEN")

	_, err = repo.CountProfilesByRoleJoined(ctx, dbm.RoleUser, marchStart, marchNow)
	require.NoError(t, err)
	sql = rec.last(t)
	assert.Contains(t, sql, "role = 'user'")
	assert.Contains(t, sql, between(marchStart, marchNow))

	_, err = repo.CountTripsCreated(ctx, marchStart, marchNow)
	require.NoError(t, err)
	sql = rec.last(t)
	assert.Contains(t, sql, `FROM "trips"`)
	assert.Contains(t, sql, between(marchStart, marchNow))
}

func TestDashboardSeries(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewDashboardRepository(db)
	start := marchNow.AddDate(0, 0, -30)

	_, err := repo.NewUsersSeries(context.Background(), start, marchNow, "day", "UTC")
	require.NoError(t, err)
	sql := rec.last(t)
	assert.Contains(t, sql, "date_trunc('day', timezone('UTC', to_timestamp(created_at))) AS bucket, COUNT(*) AS sum")
	assert.Contains(t, sql, `FROM "profiles"`)
	assert.Contains(t, sql, "deleted_at IS NULL")
	assert.Contains(t, sql, between(start, marchNow))
	assert.Contains(t, sql, `GROUP BY "bucket" ORDER BY bucket ASC`)

	_, err = repo.NewTripsSeries(context.Background(), start, marchNow, "week", "")
	require.NoError(t, err)
	sql = rec.last(t)
	assert.Contains(t, sql, "date_trunc('week', to_timestamp(created_at)) AS bucket")
	assert.Contains(t, sql, `FROM "trips"`)
}

func TestTripsByTravelStyle(t *testing.T) {
	db, rec := dryRunDB(t)

	_, err := NewDashboardRepository(db).TripsByTravelStyle(context.Background())
	require.NoError(t, err)
	sql := rec.last(t)
	assert.Contains(t, sql, "travel_style <> ''")
	assert.Contains(t, sql, `GROUP BY "travel_style" ORDER BY count DESC`)
}

func TestTripListPaging(t *testing.T) {
	db, rec := dryRunDB(t)

	_, _, err := NewTripRepository(db).ListByAccount(context.Background(), "acc-1", 8, 16)
	require.NoError(t, err)
	require.Len(t, rec.statements, 2)

	assert.Contains(t, rec.statements[0], `SELECT count(*) FROM "trips"`)
	assert.Contains(t, rec.statements[0], "account_id = 'acc-1'")

	sql := rec.statements[1]
	assert.Contains(t, sql, "account_id = 'acc-1'")
	assert.Contains(t, sql, "ORDER BY created_at DESC LIMIT 8 OFFSET 16")
	assert.NotContains(t, sql, "embedding")
}

func TestTripListSimilar(t *testing.T) {
	db, rec := dryRunDB(t)
	exclude := uuid.MustParse("7d3c6c0e-6c77-4b0e-9c55-0b4f3a4c2e11")

	_, err := NewTripRepository(db).ListSimilar(context.Background(), pgvector.NewVector([]float32{1, 0, 0}), exclude, 4)
	require.NoError(t, err)
	sql := rec.last(t)
	assert.Contains(t, sql, "id <> '"+exclude.String()+"' AND embedding IS NOT NULL")
	assert.Contains(t, sql, "ORDER BY embedding <=> '[1,0,0]'")
	assert.Contains(t, sql, "LIMIT 4")
}

func TestTripCountByAccounts(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewTripRepository(db)

	counts, err := repo.CountByAccounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Empty(t, rec.statements, "no query for an empty id list")

	_, err = repo.CountByAccounts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	sql := rec.last(t)
	assert.Contains(t, sql, "SELECT account_id, COUNT(*) AS count")
	assert.Contains(t, sql, "account_id IN ('a','b')")
	assert.Contains(t, sql, `GROUP BY "account_id"`)
}

func TestProfileInsertChecksRole(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewProfileRepository(db)

	err := repo.Insert(context.Background(), &dbm.Profile{AccountID: "x", Role: "owner"})
	assert.Error(t, err)
	assert.Empty(t, rec.statements)

	require.NoError(t, repo.Insert(context.Background(), &dbm.Profile{AccountID: "x", Role: dbm.RoleUser}))
	assert.Contains(t, rec.last(t), `INSERT INTO "profiles"`)
}
