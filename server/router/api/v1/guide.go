package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/tripnavi/tripnavi/internal/geo"
	"github.com/tripnavi/tripnavi/plugin/guide"
	"github.com/tripnavi/tripnavi/store"
)

// Provider handlers never fail on provider outage: the guide layer returns a
// typed status and the handler renders it with HTTP 200, so the UI can show a
// degraded state instead of an error page. Only malformed requests get 4xx.

func parseCoordinate(c echo.Context, latParam, lonParam string) (geo.Coordinate, error) {
	latitude, err := strconv.ParseFloat(c.QueryParam(latParam), 64)
	if err != nil {
		return geo.Coordinate{}, echo.NewHTTPError(http.StatusBadRequest, latParam+" must be a number")
	}
	longitude, err := strconv.ParseFloat(c.QueryParam(lonParam), 64)
	if err != nil {
		return geo.Coordinate{}, echo.NewHTTPError(http.StatusBadRequest, lonParam+" must be a number")
	}
	return geo.Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

func parsePositiveInt32(raw string) (int32, error) {
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || value < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "expected a positive integer")
	}
	return int32(value), nil
}

func (s *APIV1Service) GetWeather(c echo.Context) error {
	coord, err := parseCoordinate(c, "lat", "lon")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Guide.Weather(c.Request().Context(), coord))
}

func (s *APIV1Service) GetExchangeRate(c echo.Context) error {
	base := c.QueryParam("base")
	quote := c.QueryParam("quote")
	return c.JSON(http.StatusOK, s.Guide.ExchangeRate(c.Request().Context(), base, quote))
}

func (s *APIV1Service) GetNearbyRestaurants(c echo.Context) error {
	coord, err := parseCoordinate(c, "lat", "lon")
	if err != nil {
		return err
	}

	radius := 500
	if raw := c.QueryParam("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "radius must be a number")
		}
		radius = parsed
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a number")
		}
		limit = parsed
	}

	return c.JSON(http.StatusOK, s.Guide.NearbyRestaurants(c.Request().Context(), coord, radius, limit))
}

func (s *APIV1Service) GetPhoto(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Guide.Photo(c.Request().Context(), c.QueryParam("q")))
}

func (s *APIV1Service) GetDirections(c echo.Context) error {
	from, err := parseCoordinate(c, "fromLat", "fromLon")
	if err != nil {
		return err
	}
	to, err := parseCoordinate(c, "toLat", "toLon")
	if err != nil {
		return err
	}
	transport := guide.TransportProfile(c.QueryParam("profile"))
	return c.JSON(http.StatusOK, s.Guide.Directions(c.Request().Context(), from, to, transport))
}

type daySummaryResponse struct {
	TripUID     string                   `json:"tripUid"`
	Day         int32                    `json:"day"`
	Weather     guide.WeatherResult      `json:"weather"`
	Restaurants guide.PlacesResult       `json:"restaurants"`
	Photo       guide.PhotoResult        `json:"photo"`
	Rate        guide.ExchangeRateResult `json:"rate"`
}

// GetDaySummary assembles a trip day's guide data in one call. Providers are
// queried concurrently and degrade independently; a dead provider shows up as
// its unavailable status, never as a failed summary.
func (s *APIV1Service) GetDaySummary(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}
	day, err := parsePositiveInt32(c.Param("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "day must be a positive integer")
	}

	items, err := s.Store.ListItineraryItems(ctx, &store.FindItineraryItem{TripID: &trip.ID, Day: &day})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list itinerary items").SetInternal(err)
	}

	// Anchor the day on its first pinned stop, falling back to the trip's
	// own coordinate.
	anchor := geo.Coordinate{Latitude: trip.Latitude, Longitude: trip.Longitude}
	photoQuery := trip.Destination
	for _, item := range items {
		if item.Latitude != nil && item.Longitude != nil {
			anchor = geo.Coordinate{Latitude: *item.Latitude, Longitude: *item.Longitude}
			photoQuery = item.Title
			break
		}
	}
	if photoQuery == "" {
		photoQuery = trip.Title
	}

	homeCurrency := c.QueryParam("base")
	if homeCurrency == "" {
		homeCurrency = "USD"
	}

	summary := daySummaryResponse{TripUID: trip.UID, Day: day}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary.Weather = s.Guide.Weather(gctx, anchor)
		return nil
	})
	g.Go(func() error {
		summary.Restaurants = s.Guide.NearbyRestaurants(gctx, anchor, 500, 10)
		return nil
	})
	g.Go(func() error {
		summary.Photo = s.Guide.Photo(gctx, photoQuery)
		return nil
	})
	g.Go(func() error {
		summary.Rate = s.Guide.ExchangeRate(gctx, homeCurrency, trip.Currency)
		return nil
	})
	// Providers only ever degrade; the group exists for the fan-out, not for
	// error propagation.
	_ = g.Wait()

	return c.JSON(http.StatusOK, summary)
}

type travelTipsResponse struct {
	Available    bool   `json:"available"`
	TipsMarkdown string `json:"tipsMarkdown,omitempty"`
	TipsHTML     string `json:"tipsHtml,omitempty"`
}

// GetTravelTips generates AI travel tips for a trip. Follows the same
// degrade contract as the guide providers: no AI configured or a failed
// generation yields available=false, not an error.
func (s *APIV1Service) GetTravelTips(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}

	if s.TipsService == nil {
		return c.JSON(http.StatusOK, travelTipsResponse{Available: false})
	}

	if err := s.tipsSemaphore.Acquire(ctx, 1); err != nil {
		return c.JSON(http.StatusOK, travelTipsResponse{Available: false})
	}
	defer s.tipsSemaphore.Release(1)

	items, err := s.Store.ListItineraryItems(ctx, &store.FindItineraryItem{TripID: &trip.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list itinerary items").SetInternal(err)
	}
	stops := make([]string, 0, len(items))
	for _, item := range items {
		stops = append(stops, item.Title)
	}

	destination := trip.Destination
	if destination == "" {
		destination = trip.Title
	}

	tips, err := s.TipsService.TravelTips(ctx, destination, stops)
	if err != nil {
		slog.Warn("travel tips generation failed", slog.String("trip", trip.UID), slog.String("error", err.Error()))
		return c.JSON(http.StatusOK, travelTipsResponse{Available: false})
	}

	response := travelTipsResponse{Available: true, TipsMarkdown: tips}
	if html, err := s.MarkdownService.Render(tips); err == nil {
		response.TipsHTML = html
	}
	return c.JSON(http.StatusOK, response)
}
