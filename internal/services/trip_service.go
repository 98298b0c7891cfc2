package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"wayfarer/internal/config"
	dbm "wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/observability"
	"wayfarer/pkg/utils"
)

const SimilarTripsLimit = 4

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, accountID string, req request_models.CreateTripRequest) (string, error)
	GetTrips(ctx context.Context, page, pageSize int) (*response_models.TripPage, error)
	GetTripsByAccount(ctx context.Context, accountID string, page, pageSize int) (*response_models.TripPage, error)
	GetTripDetail(ctx context.Context, tripID string) (*response_models.TripDetailResponse, error)
}

type TripService struct {
	tripRepo repositories.TripRepository
	ai       utils.AIClientInterface
	images   ImageSearcher
	provider string
	timeout  time.Duration
}

func NewTripService(
	tripRepo repositories.TripRepository,
	ai utils.AIClientInterface,
	images ImageSearcher,
	cfg *config.Config,
) TripServiceInterface {
	return &TripService{
		tripRepo: tripRepo,
		ai:       ai,
		images:   images,
		provider: cfg.AI.Provider,
		timeout:  cfg.AI.RequestTimeout,
	}
}

// CreateTrip runs the whole generation pipeline and returns the new trip id.
func (t *TripService) CreateTrip(ctx context.Context, accountID string, req request_models.CreateTripRequest) (string, error) {
	if accountID == "" {
		return "", utils.ErrUnauthorized
	}
	if err := ValidateTripRequest(&req); err != nil {
		return "", err
	}

	genCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := t.ai.GenerateText(genCtx, BuildItineraryPrompt(req))
	if err != nil {
		observability.ObserveExternal(t.provider, "generate", 0, time.Since(start))
		zap.L().Error("itinerary generation failed",
			zap.String("provider", t.provider),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		observability.ObserveTrip(t.provider, "model_error")
		return "", utils.ErrUnexpectedBehaviorOfAI
	}

	observability.ObserveExternal(t.provider, "generate", 200, time.Since(start))

	itinerary := ExtractItinerary(reply)
	if itinerary == nil {
		observability.ObserveTrip(t.provider, "bad_reply")
		return "", utils.ErrUnexpectedBehaviorOfAI
	}

	// Form values are authoritative over whatever the model echoed back.
	itinerary.Country = req.Country
	itinerary.Duration = req.NumberOfDays
	itinerary.TravelStyle = req.TravelStyle
	itinerary.Interests = req.Interests
	itinerary.Budget = req.Budget
	itinerary.GroupType = req.GroupType

	imageURLs, err := t.images.SearchImages(ctx, imageQuery(req))
	if err != nil {
		zap.L().Warn("image enrichment failed, saving trip without images", zap.Error(err))
		imageURLs = nil
	}
	itinerary.ImageURLs = imageURLs

	blob, err := json.Marshal(itinerary)
	if err != nil {
		return "", err
	}

	trip := &dbm.Trip{
		AccountID:      accountID,
		Name:           itinerary.Name,
		Country:        itinerary.Country,
		TravelStyle:    itinerary.TravelStyle,
		Interests:      pq.StringArray{itinerary.Interests},
		Budget:         itinerary.Budget,
		GroupType:      itinerary.GroupType,
		Duration:       itinerary.Duration,
		EstimatedPrice: itinerary.EstimatedPrice,
		TripDetail:     string(blob),
		ImageURLs:      pq.StringArray(imageURLs),
	}

	embedding, err := t.ai.GetEmbedding(ctx, embeddingText(itinerary))
	if err != nil {
		zap.L().Warn("trip embedding failed, similar trips will skip it", zap.Error(err))
	} else {
		trip.Embedding = &embedding
	}

	id, err := t.tripRepo.Create(ctx, trip)
	if err != nil {
		zap.L().Error("failed to persist trip", zap.String("account_id", accountID), zap.Error(err))
		observability.ObserveTrip(t.provider, "store_error")
		return "", utils.ErrDatabaseError
	}

	observability.ObserveTrip(t.provider, "ok")
	zap.L().Info("trip created",
		zap.String("trip_id", id.String()),
		zap.String("country", trip.Country),
		zap.Int("images", len(imageURLs)),
		zap.Duration("elapsed", time.Since(start)))

	return id.String(), nil
}

func (t *TripService) GetTrips(ctx context.Context, page, pageSize int) (*response_models.TripPage, error) {
	trips, total, err := t.tripRepo.List(ctx, pageSize, utils.Offset(page, pageSize))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.TripPage{
		Trips:    BuildTripCards(trips),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (t *TripService) GetTripsByAccount(ctx context.Context, accountID string, page, pageSize int) (*response_models.TripPage, error) {
	trips, total, err := t.tripRepo.ListByAccount(ctx, accountID, pageSize, utils.Offset(page, pageSize))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.TripPage{
		Trips:    BuildTripCards(trips),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (t *TripService) GetTripDetail(ctx context.Context, tripID string) (*response_models.TripDetailResponse, error) {
	trip, err := t.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	itinerary, err := BuildItinerary(*trip)
	if err != nil {
		zap.L().Error("stored trip detail is not valid json", zap.String("trip_id", tripID), zap.Error(err))
		return nil, errors.Join(utils.ErrDatabaseError, err)
	}

	similar := []response_models.TripCard{}
	if trip.Embedding != nil {
		rows, err := t.tripRepo.ListSimilar(ctx, *trip.Embedding, trip.ID, SimilarTripsLimit)
		if err != nil {
			zap.L().Warn("similar trips lookup failed", zap.String("trip_id", tripID), zap.Error(err))
		} else {
			similar = BuildTripCards(rows)
		}
	}

	return &response_models.TripDetailResponse{
		Trip:         *itinerary,
		SimilarTrips: similar,
	}, nil
}
