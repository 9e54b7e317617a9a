package guide

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/tripnavi/tripnavi/internal/cache"
	"github.com/tripnavi/tripnavi/internal/geo"
)

// TransportProfile selects the routing mode.
type TransportProfile string

const (
	ProfileWalking TransportProfile = "walking"
	ProfileDriving TransportProfile = "driving"
	ProfileCycling TransportProfile = "cycling"
)

func (p TransportProfile) valid() bool {
	switch p {
	case ProfileWalking, ProfileDriving, ProfileCycling:
		return true
	}
	return false
}

// Route is a computed path between two coordinates.
type Route struct {
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
	// Geometry is an encoded polyline for map rendering.
	Geometry string `json:"geometry"`
}

// RouteResult is the typed outcome of a directions lookup. StatusEmpty means
// the router confirmed there is no route between the points.
type RouteResult struct {
	Status Status `json:"status"`
	Route  *Route `json:"route,omitempty"`
}

// Directions computes a route between two coordinates for the given profile.
func (s *Service) Directions(ctx context.Context, from, to geo.Coordinate, transport TransportProfile) RouteResult {
	if transport == "" {
		transport = ProfileWalking
	}
	if err := from.Validate(); err != nil {
		slog.Debug("directions lookup rejected", "error", err)
		return RouteResult{Status: StatusInvalidInput}
	}
	if err := to.Validate(); err != nil {
		slog.Debug("directions lookup rejected", "error", err)
		return RouteResult{Status: StatusInvalidInput}
	}
	if !transport.valid() {
		return RouteResult{Status: StatusInvalidInput}
	}

	key := fmt.Sprintf("%s|%s|%s", from.Key(), to.Key(), transport)
	switch res := s.directionsCache.Get(ctx, key); res.State {
	case cache.Hit:
		route := res.Value
		return RouteResult{Status: StatusOK, Route: &route}
	case cache.HitEmpty:
		return RouteResult{Status: StatusEmpty}
	}

	route, found, err := s.fetchRoute(ctx, from, to, transport)
	if err != nil {
		slog.Warn("directions fetch failed", "key", key, "error", err)
		return RouteResult{Status: StatusUnavailable}
	}

	if !found {
		s.directionsCache.SetEmpty(ctx, key)
		return RouteResult{Status: StatusEmpty}
	}
	s.directionsCache.Set(ctx, key, route)
	return RouteResult{Status: StatusOK, Route: &route}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

func (s *Service) fetchRoute(ctx context.Context, from, to geo.Coordinate, transport TransportProfile) (Route, bool, error) {
	// OSRM takes lon,lat pairs.
	url := fmt.Sprintf("%s/route/v1/%s/%.5f,%.5f;%.5f,%.5f?overview=full&geometries=polyline",
		s.config.DirectionsBaseURL, transport,
		from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	var resp osrmResponse
	if err := s.client.getJSON(ctx, url, &resp); err != nil {
		return Route{}, false, err
	}

	switch resp.Code {
	case "Ok":
	case "NoRoute":
		return Route{}, false, nil
	default:
		return Route{}, false, errors.Errorf("router answered with code %q", resp.Code)
	}
	if len(resp.Routes) == 0 {
		return Route{}, false, nil
	}

	best := resp.Routes[0]
	return Route{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        best.Geometry,
	}, true, nil
}
