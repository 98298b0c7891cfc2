package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	dbm "wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

type fakeAI struct {
	reply    string
	err      error
	embedErr error
	prompts  []string
}

func (f *fakeAI) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeAI) GetEmbedding(_ context.Context, text string) (pgvector.Vector, error) {
	if f.embedErr != nil {
		return pgvector.Vector{}, f.embedErr
	}
	return utils.HashedTextVector(text), nil
}

func (f *fakeAI) Close() error { return nil }

// slowAI blocks until the caller's context ends.
type slowAI struct {
	fakeAI
	gotErr error
}

func (s *slowAI) GenerateText(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	s.gotErr = ctx.Err()
	return "", ctx.Err()
}

// observeLogs routes zap.L() into memory for the rest of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))
	return logs
}

type fakeImages struct {
	urls    []string
	err     error
	queries []string
}

func (f *fakeImages) SearchImages(_ context.Context, query string) ([]string, error) {
	f.queries = append(f.queries, query)
	return f.urls, f.err
}

type fakeTripRepo struct {
	trips     []dbm.Trip
	createErr error
	listErr   error
}

func (f *fakeTripRepo) Create(_ context.Context, trip *dbm.Trip) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	f.trips = append(f.trips, *trip)
	return trip.ID, nil
}

func (f *fakeTripRepo) GetByID(_ context.Context, id string) (*dbm.Trip, error) {
	for i := range f.trips {
		if f.trips[i].ID.String() == id {
			t := f.trips[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTripRepo) sorted() []dbm.Trip {
	out := append([]dbm.Trip(nil), f.trips...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

func paginate(trips []dbm.Trip, limit, offset int) []dbm.Trip {
	if offset >= len(trips) {
		return []dbm.Trip{}
	}
	end := offset + limit
	if end > len(trips) {
		end = len(trips)
	}
	return trips[offset:end]
}

func (f *fakeTripRepo) List(_ context.Context, limit, offset int) ([]dbm.Trip, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	all := f.sorted()
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (f *fakeTripRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]dbm.Trip, int64, error) {
	var mine []dbm.Trip
	for _, t := range f.sorted() {
		if t.AccountID == accountID {
			mine = append(mine, t)
		}
	}
	return paginate(mine, limit, offset), int64(len(mine)), nil
}

func (f *fakeTripRepo) ListSimilar(_ context.Context, _ pgvector.Vector, excludeID uuid.UUID, limit int) ([]dbm.Trip, error) {
	var out []dbm.Trip
	for _, t := range f.trips {
		if t.ID != excludeID && t.Embedding != nil {
			out = append(out, t)
		}
	}
	return paginate(out, limit, 0), nil
}

func (f *fakeTripRepo) CountByAccounts(_ context.Context, accountIDs []string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, id := range accountIDs {
		for _, t := range f.trips {
			if t.AccountID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles  map[string]*dbm.Profile
	findErr   error
	insertErr error
	inserted  int
}

func newFakeProfileRepo(profiles ...dbm.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: map[string]*dbm.Profile{}}
	for i := range profiles {
		p := profiles[i]
		f.profiles[p.AccountID] = &p
	}
	return f
}

func (f *fakeProfileRepo) Insert(_ context.Context, profile *dbm.Profile) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if err := profile.BeforeSave(nil); err != nil {
		return err
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.CreatedAt == 0 {
		profile.CreatedAt = time.Now().Unix()
	}
	p := *profile
	f.profiles[profile.AccountID] = &p
	f.inserted++
	return nil
}

func (f *fakeProfileRepo) FindByAccountID(_ context.Context, accountID string) (*dbm.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.profiles[accountID]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (f *fakeProfileRepo) List(_ context.Context, limit, offset int) ([]dbm.Profile, int64, error) {
	all := make([]dbm.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })
	if offset >= len(all) {
		return []dbm.Profile{}, int64(len(all)), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

var (
	_ repositories.TripRepository    = (*fakeTripRepo)(nil)
	_ repositories.ProfileRepository = (*fakeProfileRepo)(nil)
	_ utils.AIClientInterface        = (*fakeAI)(nil)
	_ ImageSearcher                  = (*fakeImages)(nil)

	errBoom = errors.New("boom")
)
