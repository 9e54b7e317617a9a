// Package guide orchestrates the external travel data providers: directions,
// nearby places, photos, weather, and exchange rates. Every provider follows
// the same contract: validate input, consult its expiring cache, fetch on a
// miss, cache successful results, and degrade to a typed unavailable result
// on any failure. Provider outages never surface as errors to callers.
package guide

import (
	"time"

	"github.com/tripnavi/tripnavi/internal/cache"
	"github.com/tripnavi/tripnavi/internal/profile"
)

// Status classifies a provider lookup outcome.
type Status string

const (
	// StatusOK means a value is present (fresh from cache or just fetched).
	StatusOK Status = "ok"
	// StatusEmpty means the provider was asked and confirmed there is no
	// result (no photo, no route). Cached like any other answer.
	StatusEmpty Status = "empty"
	// StatusInvalidInput means the request parameters were rejected before
	// any cache lookup or fetch.
	StatusInvalidInput Status = "invalid_input"
	// StatusUnavailable means the provider could not be reached or answered
	// with an error. Never cached.
	StatusUnavailable Status = "unavailable"
)

// Config holds provider endpoints and cache TTLs.
type Config struct {
	DirectionsBaseURL string
	PlacesBaseURL     string
	PhotosBaseURL     string
	WeatherBaseURL    string
	CurrencyBaseURL   string

	DirectionsTTL time.Duration
	PlacesTTL     time.Duration
	PhotosTTL     time.Duration
	WeatherTTL    time.Duration
	CurrencyTTL   time.Duration

	// Timeout bounds each outbound request.
	Timeout time.Duration
	// RequestsPerSecond is the politeness limit shared by all providers.
	RequestsPerSecond float64
	UserAgent         string
}

// ConfigFromProfile builds provider configuration from the server profile.
func ConfigFromProfile(p *profile.Profile) Config {
	return Config{
		DirectionsBaseURL: p.DirectionsBaseURL,
		PlacesBaseURL:     p.PlacesBaseURL,
		PhotosBaseURL:     p.PhotosBaseURL,
		WeatherBaseURL:    p.WeatherBaseURL,
		CurrencyBaseURL:   p.CurrencyBaseURL,
		DirectionsTTL:     p.DirectionsTTL,
		PlacesTTL:         p.PlacesTTL,
		PhotosTTL:         p.PhotosTTL,
		WeatherTTL:        p.WeatherTTL,
		CurrencyTTL:       p.CurrencyTTL,
	}
}

func (c *Config) applyDefaults() {
	if c.DirectionsTTL <= 0 {
		c.DirectionsTTL = 24 * time.Hour
	}
	if c.PlacesTTL <= 0 {
		c.PlacesTTL = 24 * time.Hour
	}
	if c.PhotosTTL <= 0 {
		c.PhotosTTL = 24 * time.Hour
	}
	if c.WeatherTTL <= 0 {
		c.WeatherTTL = 4 * time.Hour
	}
	if c.CurrencyTTL <= 0 {
		c.CurrencyTTL = time.Hour
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 2
	}
	if c.UserAgent == "" {
		c.UserAgent = "tripnavi/1.0 (+https://github.com/tripnavi/tripnavi)"
	}
}

// Service is the provider facade. Construct once at startup and inject; the
// caches are explicit instances over the given backend, not hidden globals.
type Service struct {
	config Config
	client *httpClient

	directionsCache *cache.Cache[Route]
	placesCache     *cache.Cache[[]Place]
	photoCache      *cache.Cache[Photo]
	weatherCache    *cache.Cache[WeatherSnapshot]
	currencyCache   *cache.Cache[ExchangeRate]

	// weatherGroup de-duplicates concurrent forecast fetches; a map view
	// refresh fans out many lookups for the same rounded coordinate at once.
	weatherGroup cache.Group[WeatherSnapshot]
}

// NewService creates the provider facade over the given cache backend.
func NewService(backend cache.Backend, config Config) *Service {
	config.applyDefaults()
	return &Service{
		config:          config,
		client:          newHTTPClient(config.Timeout, config.RequestsPerSecond, config.UserAgent),
		directionsCache: cache.New[Route](backend, "directions", config.DirectionsTTL),
		placesCache:     cache.New[[]Place](backend, "places", config.PlacesTTL),
		photoCache:      cache.New[Photo](backend, "photos", config.PhotosTTL),
		weatherCache:    cache.New[WeatherSnapshot](backend, "weather", config.WeatherTTL),
		currencyCache:   cache.New[ExchangeRate](backend, "currency", config.CurrencyTTL),
	}
}
