package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"wayfarer/internal/config"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/memcache"
	"wayfarer/pkg/observability"
	"wayfarer/pkg/utils"
)

const countriesCacheKey = "countries:v1"

type CountryServiceInterface interface {
	GetCountries(ctx context.Context) ([]response_models.Country, error)
}

type CountryService struct {
	HTTP    *http.Client
	BaseURL string
	Cache   memcache.JSONCache
	TTL     time.Duration

	// concurrent misses share one upstream fetch
	group singleflight.Group
}

func NewCountryService(cache memcache.JSONCache, cfg *config.Config) CountryServiceInterface {
	return &CountryService{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: cfg.Countries.BaseURL,
		Cache:   cache,
		TTL:     cfg.Countries.CacheTTL,
	}
}

func (c *CountryService) GetCountries(ctx context.Context) ([]response_models.Country, error) {
	var cached []response_models.Country
	if err := c.Cache.Get(ctx, countriesCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, memcache.ErrCacheMiss) {
		zap.L().Warn("country cache read failed", zap.Error(err))
	}

	// The fetch outlives a caller that gives up, so the cache still gets filled.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(countriesCacheKey, func() (interface{}, error) {
		return c.load(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]response_models.Country), nil
	}
}

func (c *CountryService) load(ctx context.Context) ([]response_models.Country, error) {
	var cached []response_models.Country
	if err := c.Cache.Get(ctx, countriesCacheKey, &cached); err == nil {
		return cached, nil
	}

	countries, err := c.fetch(ctx)
	if err != nil {
		zap.L().Error("country reference fetch failed", zap.Error(err))
		return nil, utils.ErrCountriesUnavailable
	}

	if err := c.Cache.Set(ctx, countriesCacheKey, countries, c.TTL); err != nil {
		zap.L().Warn("country cache write failed", zap.Error(err))
	}
	return countries, nil
}

func (c *CountryService) fetch(ctx context.Context) ([]response_models.Country, error) {
	q := url.Values{}
	q.Set("fields", "name,flag,latlng,maps")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/all?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		observability.ObserveExternal("restcountries", "all", 0, time.Since(start))
		return nil, fmt.Errorf("countries http error: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("restcountries", "all", resp.StatusCode, time.Since(start))

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("countries bad status: %s", resp.Status)
	}

	var payload []struct {
		Name struct {
			Common string `json:"common"`
		} `json:"name"`
		Flag   string    `json:"flag"`
		LatLng []float64 `json:"latlng"`
		Maps   struct {
			OpenStreetMaps string `json:"openStreetMaps"`
		} `json:"maps"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("countries decode: %w", err)
	}

	out := make([]response_models.Country, 0, len(payload))
	for _, p := range payload {
		if p.Name.Common == "" {
			continue
		}
		out = append(out, response_models.Country{
			Name:          p.Flag + " " + p.Name.Common,
			Flag:          p.Flag,
			Value:         p.Name.Common,
			Coordinates:   p.LatLng,
			OpenStreetMap: p.Maps.OpenStreetMaps,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}
