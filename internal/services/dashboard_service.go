package services

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	dbm "wayfarer/internal/models/db_models"
	resp "wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

const (
	dashboardRecentLimit = 4
	growthWindowDays     = 30
	growthInterval       = "day"
	growthTimezone       = "UTC"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, accountID string) (*resp.DashboardReport, error)
	GetStats(ctx context.Context) (*resp.DashboardStats, error)
}

type dashboardService struct {
	repo     repositories.DashboardRepository
	profiles ProfileServiceInterface
	now      func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository, profiles ProfileServiceInterface) DashboardService {
	return &dashboardService{repo: repo, profiles: profiles, now: time.Now}
}

// CalculateTrendPercentage compares this month's count with last month's.
func CalculateTrendPercentage(current, prior int64) resp.TrendResult {
	if prior == 0 {
		if current > 0 {
			return resp.TrendResult{Trend: resp.TrendIncrement, Percentage: 100}
		}
		return resp.TrendResult{Trend: resp.TrendNoChange, Percentage: 0}
	}

	change := current - prior
	pct := math.Abs(float64(change)) / float64(prior) * 100
	pct = math.Round(pct*100) / 100

	switch {
	case change > 0:
		return resp.TrendResult{Trend: resp.TrendIncrement, Percentage: pct}
	case change < 0:
		return resp.TrendResult{Trend: resp.TrendDecrement, Percentage: pct}
	default:
		return resp.TrendResult{Trend: resp.TrendNoChange, Percentage: 0}
	}
}

func monthly(total, current, prior int64) resp.MonthlyCount {
	return resp.MonthlyCount{
		Total:        total,
		CurrentMonth: current,
		LastMonth:    prior,
		Trend:        CalculateTrendPercentage(current, prior),
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*resp.DashboardStats, error) {
	cur, prev := utils.MonthWindows(s.now().UTC())

	var (
		totalUsers, usersCur, usersPrev int64
		totalTrips, tripsCur, tripsPrev int64
		totalRole, roleCur, rolePrev    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&totalUsers, s.repo.CountProfiles)
	count(&usersCur, func(c context.Context) (int64, error) { return s.repo.CountProfilesJoined(c, cur.Start, cur.End) })
	count(&usersPrev, func(c context.Context) (int64, error) { return s.repo.CountProfilesJoined(c, prev.Start, prev.End) })
	count(&totalTrips, s.repo.CountTrips)
	count(&tripsCur, func(c context.Context) (int64, error) { return s.repo.CountTripsCreated(c, cur.Start, cur.End) })
	count(&tripsPrev, func(c context.Context) (int64, error) { return s.repo.CountTripsCreated(c, prev.Start, prev.End) })
	count(&totalRole, func(c context.Context) (int64, error) { return s.repo.CountProfilesByRole(c, dbm.RoleUser) })
	count(&roleCur, func(c context.Context) (int64, error) {
		return s.repo.CountProfilesByRoleJoined(c, dbm.RoleUser, cur.Start, cur.End)
	})
	count(&rolePrev, func(c context.Context) (int64, error) {
		return s.repo.CountProfilesByRoleJoined(c, dbm.RoleUser, prev.Start, prev.End)
	})

	if err := g.Wait(); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &resp.DashboardStats{
		TotalUsers:   totalUsers,
		UsersJoined:  monthly(totalUsers, usersCur, usersPrev),
		TotalTrips:   totalTrips,
		TripsCreated: monthly(totalTrips, tripsCur, tripsPrev),
		UserRole:     monthly(totalRole, roleCur, rolePrev),
	}, nil
}

func toDailyCounts(rows []repositories.BucketSum) []resp.DailyCount {
	out := make([]resp.DailyCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, resp.DailyCount{Day: utils.DayKey(r.Bucket), Count: r.Sum})
	}
	return out
}

// BuildDashboard loads every dashboard panel concurrently; one failure fails the page.
func (s *dashboardService) BuildDashboard(ctx context.Context, accountID string) (*resp.DashboardReport, error) {
	now := s.now().UTC()
	growthStart := now.AddDate(0, 0, -growthWindowDays)

	var (
		report  resp.DashboardReport
		profile *resp.ProfileResponse
		stats   *resp.DashboardStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		profile, err = s.profiles.GetProfile(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.GetStats(gctx)
		return err
	})
	g.Go(func() error {
		trips, err := s.repo.RecentTrips(gctx, dashboardRecentLimit)
		if err != nil {
			return utils.ErrDatabaseError
		}
		report.RecentTrips = BuildTripCards(trips)
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.NewUsersSeries(gctx, growthStart, now, growthInterval, growthTimezone)
		if err != nil {
			return utils.ErrDatabaseError
		}
		report.UserGrowth = toDailyCounts(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.NewTripsSeries(gctx, growthStart, now, growthInterval, growthTimezone)
		if err != nil {
			return utils.ErrDatabaseError
		}
		report.TripGrowth = toDailyCounts(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.TripsByTravelStyle(gctx)
		if err != nil {
			return utils.ErrDatabaseError
		}
		styles := make([]resp.TravelStyleCount, 0, len(rows))
		for _, r := range rows {
			styles = append(styles, resp.TravelStyleCount{TravelStyle: r.TravelStyle, Count: r.Count})
		}
		report.TripsByStyle = styles
		return nil
	})
	g.Go(func() error {
		profiles, err := s.repo.LatestProfiles(gctx, dashboardRecentLimit)
		if err != nil {
			return utils.ErrDatabaseError
		}
		users := make([]resp.ProfileResponse, 0, len(profiles))
		for _, p := range profiles {
			users = append(users, BuildProfileResponse(p, 0))
		}
		report.LatestUsers = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.User = *profile
	report.Stats = *stats
	return &report, nil
}
