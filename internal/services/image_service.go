package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"wayfarer/pkg/observability"
	"wayfarer/pkg/utils"
)

// MaxTripImages is how many photo URLs a trip keeps.
const MaxTripImages = 3

type ImageSearcher interface {
	SearchImages(ctx context.Context, query string) ([]string, error)
}

type UnsplashClient struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewUnsplashClient(base, key string, rps int) *UnsplashClient {
	if rps <= 0 {
		rps = 5
	}
	return &UnsplashClient{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 15 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// SearchImages returns up to MaxTripImages regular-size photo URLs for query.
func (c *UnsplashClient) SearchImages(ctx context.Context, query string) ([]string, error) {
	if c.key == "" {
		return nil, fmt.Errorf("%w: UNSPLASH_ACCESS_KEY is empty", utils.ErrImageSearchFailed)
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", fmt.Sprint(MaxTripImages))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+c.key)
	req.Header.Set("Accept-Version", "v1")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("unsplash", "search_photos", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", utils.ErrImageSearchFailed, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("unsplash", "search_photos", resp.StatusCode, time.Since(start))

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: status %s", utils.ErrImageSearchFailed, resp.Status)
	}

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrImageSearchFailed, err)
	}

	urls := make([]string, 0, MaxTripImages)
	for _, r := range payload.Results {
		if r.URLs.Regular == "" {
			continue
		}
		urls = append(urls, r.URLs.Regular)
		if len(urls) == MaxTripImages {
			break
		}
	}
	return urls, nil
}
