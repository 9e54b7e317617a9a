package v1

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/tripnavi/tripnavi/internal/profile"
	"github.com/tripnavi/tripnavi/plugin/ai"
	"github.com/tripnavi/tripnavi/plugin/guide"
	"github.com/tripnavi/tripnavi/plugin/markdown"
	"github.com/tripnavi/tripnavi/store"
)

// APIV1Service exposes the REST API: trip and itinerary CRUD, the guide
// provider lookups, the AI tips endpoint, and the itinerary feed.
type APIV1Service struct {
	Profile         *profile.Profile
	Store           *store.Store
	Guide           *guide.Service
	MarkdownService markdown.Service
	TipsService     *ai.TipsService

	// tipsSemaphore limits concurrent tip generations; the LLM calls are the
	// slowest and most expensive thing this server does.
	tipsSemaphore *semaphore.Weighted
}

// NewAPIV1Service wires the guide providers over the store's durable cache
// backend. All caches are explicit instances created here, once.
func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	service := &APIV1Service{
		Profile:         profile,
		Store:           store,
		Guide:           guide.NewService(store.CacheBackend(), guide.ConfigFromProfile(profile)),
		MarkdownService: markdown.NewService(),
		tipsSemaphore:   semaphore.NewWeighted(2),
	}

	if profile.IsAIEnabled() {
		tips, err := ai.NewTipsService(&ai.Config{
			BaseURL: profile.AIBaseURL,
			APIKey:  profile.AIAPIKey,
			Model:   profile.AIModel,
		})
		if err != nil {
			slog.Warn("AI tips disabled", slog.String("error", err.Error()))
		} else {
			service.TipsService = tips
		}
	}

	return service
}

// Register mounts all v1 routes on the given Echo instance.
func (s *APIV1Service) Register(_ context.Context, echoServer *echo.Echo) error {
	apiGroup := echoServer.Group("/api/v1")

	// Trip CRUD.
	apiGroup.POST("/trips", s.CreateTrip)
	apiGroup.GET("/trips", s.ListTrips)
	apiGroup.GET("/trips/:uid", s.GetTrip)
	apiGroup.PATCH("/trips/:uid", s.UpdateTrip)
	apiGroup.DELETE("/trips/:uid", s.DeleteTrip)

	// Itinerary items.
	apiGroup.POST("/trips/:uid/items", s.CreateItineraryItem)
	apiGroup.GET("/trips/:uid/items", s.ListItineraryItems)
	apiGroup.PATCH("/items/:uid", s.UpdateItineraryItem)
	apiGroup.DELETE("/items/:uid", s.DeleteItineraryItem)

	// Guide providers.
	apiGroup.GET("/guide/weather", s.GetWeather)
	apiGroup.GET("/guide/rates", s.GetExchangeRate)
	apiGroup.GET("/guide/places", s.GetNearbyRestaurants)
	apiGroup.GET("/guide/photo", s.GetPhoto)
	apiGroup.GET("/guide/directions", s.GetDirections)

	// Composite endpoints.
	apiGroup.GET("/trips/:uid/days/:day/summary", s.GetDaySummary)
	apiGroup.GET("/trips/:uid/tips", s.GetTravelTips)

	// Feed lives outside the API prefix, like any other syndication URL.
	echoServer.GET("/feed/:uid", s.GetTripFeed)

	return nil
}
