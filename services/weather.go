package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gofish/models"

	"golang.org/x/sync/singleflight"
)

// DefaultWeatherTTL is how long a cached reading is served before refetching
const DefaultWeatherTTL = 30 * time.Minute

// DefaultRefreshTimeout bounds a shared refresh, provider call and cache
// write together, so a hung upstream cannot hold the refresh slot forever.
const DefaultRefreshTimeout = 10 * time.Second

// WeatherService is a cache-aside proxy over a single global reading
type WeatherService struct {
	repo     WeatherRepository
	provider WeatherProvider
	clock    Clock
	ttl      time.Duration
	// refreshTimeout bounds the shared refresh started by the first miss
	refreshTimeout time.Duration
	group          singleflight.Group
}

// NewWeatherService creates a WeatherService. A non-positive ttl selects
// DefaultWeatherTTL.
func NewWeatherService(repo WeatherRepository, provider WeatherProvider, clock Clock, ttl time.Duration) *WeatherService {
	if clock == nil {
		clock = RealClock{}
	}
	if ttl <= 0 {
		ttl = DefaultWeatherTTL
	}
	return &WeatherService{
		repo:           repo,
		provider:       provider,
		clock:          clock,
		ttl:            ttl,
		refreshTimeout: DefaultRefreshTimeout,
	}
}

// Get returns the cached reading while it is younger than the TTL, otherwise
// refreshes it from the provider. It never fails: any error is logged and
// FallbackWeather is returned with the cached slot left as it was.
func (s *WeatherService) Get(ctx context.Context) models.WeatherReading {
	cached, err := s.repo.Current(ctx)
	if err != nil {
		log.Printf("Weather cache read error: %v", err)
		return models.FallbackWeather
	}
	if cached != nil && s.clock.Now().Sub(cached.CachedAt) < s.ttl {
		return cached.WeatherReading
	}

	// Concurrent misses in this process share one provider call. The call
	// outlives whichever request started it but never refreshTimeout, and
	// each caller stops waiting when its own context is done.
	ch := s.group.DoChan("current", func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
		defer cancel()
		return s.refresh(refreshCtx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			log.Printf("Weather API error: %v", res.Err)
			return models.FallbackWeather
		}
		return res.Val.(models.WeatherReading)
	case <-ctx.Done():
		log.Printf("Weather refresh abandoned by caller: %v", ctx.Err())
		return models.FallbackWeather
	}
}

func (s *WeatherService) refresh(ctx context.Context) (models.WeatherReading, error) {
	reading, err := s.provider.Fetch(ctx)
	if err != nil {
		return models.WeatherReading{}, err
	}
	entry := models.CachedWeather{WeatherReading: reading, CachedAt: s.clock.Now().UTC()}
	if err := s.repo.Replace(ctx, entry); err != nil {
		return models.WeatherReading{}, fmt.Errorf("replace cached weather: %w", err)
	}
	return reading, nil
}
