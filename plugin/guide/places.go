package guide

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/tripnavi/tripnavi/internal/cache"
	"github.com/tripnavi/tripnavi/internal/geo"
)

const (
	defaultPlaceLimit = 10
	maxPlaceLimit     = 50
	maxSearchRadiusM  = 5000
)

// Place is a nearby point of interest (currently restaurants only).
type Place struct {
	Name       string         `json:"name"`
	Cuisine    string         `json:"cuisine,omitempty"`
	Coordinate geo.Coordinate `json:"coordinate"`
}

// PlacesResult is the typed outcome of a nearby search.
type PlacesResult struct {
	Status Status  `json:"status"`
	Places []Place `json:"places,omitempty"`
}

// NearbyRestaurants searches for restaurants around the coordinate. An empty
// neighborhood is a cacheable answer: the provider confirmed there is nothing
// there, and re-asking within the TTL would be wasted traffic.
func (s *Service) NearbyRestaurants(ctx context.Context, coord geo.Coordinate, radiusMeters, limit int) PlacesResult {
	if err := coord.Validate(); err != nil {
		slog.Debug("places lookup rejected", "error", err)
		return PlacesResult{Status: StatusInvalidInput}
	}
	if radiusMeters <= 0 || radiusMeters > maxSearchRadiusM {
		return PlacesResult{Status: StatusInvalidInput}
	}
	if limit <= 0 {
		limit = defaultPlaceLimit
	}
	if limit > maxPlaceLimit {
		limit = maxPlaceLimit
	}

	key := fmt.Sprintf("%s|r%d|n%d", coord.Key(), radiusMeters, limit)
	switch res := s.placesCache.Get(ctx, key); res.State {
	case cache.Hit:
		return PlacesResult{Status: StatusOK, Places: res.Value}
	case cache.HitEmpty:
		return PlacesResult{Status: StatusEmpty}
	}

	places, err := s.fetchNearbyRestaurants(ctx, coord, radiusMeters, limit)
	if err != nil {
		slog.Warn("places fetch failed", "key", key, "error", err)
		return PlacesResult{Status: StatusUnavailable}
	}

	if len(places) == 0 {
		s.placesCache.SetEmpty(ctx, key)
		return PlacesResult{Status: StatusEmpty}
	}
	s.placesCache.Set(ctx, key, places)
	return PlacesResult{Status: StatusOK, Places: places}
}

type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (s *Service) fetchNearbyRestaurants(ctx context.Context, coord geo.Coordinate, radiusMeters, limit int) ([]Place, error) {
	query := fmt.Sprintf(
		`[out:json][timeout:10];node["amenity"="restaurant"](around:%d,%.5f,%.5f);out body %d;`,
		radiusMeters, coord.Latitude, coord.Longitude, limit,
	)

	var resp overpassResponse
	form := url.Values{"data": {query}}
	if err := s.client.postFormJSON(ctx, s.config.PlacesBaseURL, form, &resp); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Elements))
	for _, element := range resp.Elements {
		name := element.Tags["name"]
		if name == "" {
			// Unnamed nodes are useless on an itinerary.
			continue
		}
		places = append(places, Place{
			Name:       name,
			Cuisine:    element.Tags["cuisine"],
			Coordinate: geo.Coordinate{Latitude: element.Lat, Longitude: element.Lon},
		})
		if len(places) == limit {
			break
		}
	}
	return places, nil
}
