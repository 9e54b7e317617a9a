package v1

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/tripnavi/tripnavi/internal/geo"
	"github.com/tripnavi/tripnavi/store"
)

type tripPayload struct {
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	Currency    string  `json:"currency"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Notes       string  `json:"notes"`
}

type tripResponse struct {
	UID         string  `json:"uid"`
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	Currency    string  `json:"currency"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Notes       string  `json:"notes"`
	NotesHTML   string  `json:"notesHtml,omitempty"`
	RowStatus   string  `json:"rowStatus"`
	CreatedTs   int64   `json:"createdTs"`
	UpdatedTs   int64   `json:"updatedTs"`
}

func (s *APIV1Service) toTripResponse(trip *store.Trip) *tripResponse {
	resp := &tripResponse{
		UID:         trip.UID,
		Title:       trip.Title,
		Destination: trip.Destination,
		Currency:    trip.Currency,
		Latitude:    trip.Latitude,
		Longitude:   trip.Longitude,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Notes:       trip.Notes,
		RowStatus:   trip.RowStatus.String(),
		CreatedTs:   trip.CreatedTs,
		UpdatedTs:   trip.UpdatedTs,
	}
	if trip.Notes != "" {
		html, err := s.MarkdownService.Render(trip.Notes)
		if err != nil {
			slog.Warn("failed to render trip notes", slog.String("uid", trip.UID), slog.String("error", err.Error()))
		} else {
			resp.NotesHTML = html
		}
	}
	return resp
}

func validateTripPayload(payload *tripPayload) error {
	if strings.TrimSpace(payload.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	coord := geo.Coordinate{Latitude: payload.Latitude, Longitude: payload.Longitude}
	if err := coord.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	for _, date := range []string{payload.StartDate, payload.EndDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dates must be YYYY-MM-DD")
		}
	}
	return nil
}

func (s *APIV1Service) CreateTrip(c echo.Context) error {
	ctx := c.Request().Context()

	payload := &tripPayload{}
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := validateTripPayload(payload); err != nil {
		return err
	}

	trip, err := s.Store.CreateTrip(ctx, &store.Trip{
		UID:         shortuuid.New(),
		Title:       payload.Title,
		Destination: payload.Destination,
		Currency:    strings.ToUpper(payload.Currency),
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Notes:       payload.Notes,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create trip").SetInternal(err)
	}

	return c.JSON(http.StatusOK, s.toTripResponse(trip))
}

func (s *APIV1Service) ListTrips(c echo.Context) error {
	ctx := c.Request().Context()

	find := &store.FindTrip{}
	if c.QueryParam("state") != "archived" {
		normal := store.Normal
		find.RowStatus = &normal
	} else {
		archived := store.Archived
		find.RowStatus = &archived
	}

	trips, err := s.Store.ListTrips(ctx, find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list trips").SetInternal(err)
	}

	responses := make([]*tripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, s.toTripResponse(trip))
	}
	return c.JSON(http.StatusOK, responses)
}

// findTripByUID resolves the :uid route param, producing 404 when absent.
func (s *APIV1Service) findTripByUID(c echo.Context) (*store.Trip, error) {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	trip, err := s.Store.GetTrip(ctx, &store.FindTrip{UID: &uid})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to get trip").SetInternal(err)
	}
	if trip == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "trip not found")
	}
	return trip, nil
}

func (s *APIV1Service) GetTrip(c echo.Context) error {
	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.toTripResponse(trip))
}

type updateTripPayload struct {
	Title       *string  `json:"title"`
	Destination *string  `json:"destination"`
	Currency    *string  `json:"currency"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	Notes       *string  `json:"notes"`
	RowStatus   *string  `json:"rowStatus"`
}

func (s *APIV1Service) UpdateTrip(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}

	payload := &updateTripPayload{}
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	update := &store.UpdateTrip{
		ID:          trip.ID,
		Title:       payload.Title,
		Destination: payload.Destination,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Notes:       payload.Notes,
	}
	if payload.Currency != nil {
		currency := strings.ToUpper(*payload.Currency)
		update.Currency = &currency
	}
	if payload.RowStatus != nil {
		rowStatus := store.RowStatus(*payload.RowStatus)
		if rowStatus != store.Normal && rowStatus != store.Archived {
			return echo.NewHTTPError(http.StatusBadRequest, "rowStatus must be NORMAL or ARCHIVED")
		}
		update.RowStatus = &rowStatus
	}
	if payload.Latitude != nil || payload.Longitude != nil {
		coord := geo.Coordinate{Latitude: trip.Latitude, Longitude: trip.Longitude}
		if payload.Latitude != nil {
			coord.Latitude = *payload.Latitude
		}
		if payload.Longitude != nil {
			coord.Longitude = *payload.Longitude
		}
		if err := coord.Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	if err := s.Store.UpdateTrip(ctx, update); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update trip").SetInternal(err)
	}

	updated, err := s.findTripByUID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.toTripResponse(updated))
}

func (s *APIV1Service) DeleteTrip(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}

	if err := s.Store.DeleteTrip(ctx, &store.DeleteTrip{ID: trip.ID}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete trip").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type itineraryItemPayload struct {
	Day       int32    `json:"day"`
	Position  int32    `json:"position"`
	Title     string   `json:"title"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	StartTime *string  `json:"startTime"`
	Notes     string   `json:"notes"`
}

type itineraryItemResponse struct {
	UID       string   `json:"uid"`
	TripUID   string   `json:"tripUid"`
	Day       int32    `json:"day"`
	Position  int32    `json:"position"`
	Title     string   `json:"title"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	StartTime *string  `json:"startTime,omitempty"`
	Notes     string   `json:"notes"`
	CreatedTs int64    `json:"createdTs"`
	UpdatedTs int64    `json:"updatedTs"`
}

func toItineraryItemResponse(item *store.ItineraryItem, tripUID string) *itineraryItemResponse {
	return &itineraryItemResponse{
		UID:       item.UID,
		TripUID:   tripUID,
		Day:       item.Day,
		Position:  item.Position,
		Title:     item.Title,
		Latitude:  item.Latitude,
		Longitude: item.Longitude,
		StartTime: item.StartTime,
		Notes:     item.Notes,
		CreatedTs: item.CreatedTs,
		UpdatedTs: item.UpdatedTs,
	}
}

func validateItemCoordinates(latitude, longitude *float64) error {
	if (latitude == nil) != (longitude == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "latitude and longitude must be set together")
	}
	if latitude != nil {
		coord := geo.Coordinate{Latitude: *latitude, Longitude: *longitude}
		if err := coord.Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return nil
}

func (s *APIV1Service) CreateItineraryItem(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}

	payload := &itineraryItemPayload{}
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(payload.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if payload.Day < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "day must be >= 1")
	}
	if err := validateItemCoordinates(payload.Latitude, payload.Longitude); err != nil {
		return err
	}

	item, err := s.Store.CreateItineraryItem(ctx, &store.ItineraryItem{
		UID:       uuid.NewString(),
		TripID:    trip.ID,
		Day:       payload.Day,
		Position:  payload.Position,
		Title:     payload.Title,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		StartTime: payload.StartTime,
		Notes:     payload.Notes,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create itinerary item").SetInternal(err)
	}

	return c.JSON(http.StatusOK, toItineraryItemResponse(item, trip.UID))
}

func (s *APIV1Service) ListItineraryItems(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}

	find := &store.FindItineraryItem{TripID: &trip.ID}
	if dayParam := c.QueryParam("day"); dayParam != "" {
		day, err := parsePositiveInt32(dayParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "day must be a positive integer")
		}
		find.Day = &day
	}

	items, err := s.Store.ListItineraryItems(ctx, find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list itinerary items").SetInternal(err)
	}

	responses := make([]*itineraryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItineraryItemResponse(item, trip.UID))
	}
	return c.JSON(http.StatusOK, responses)
}

type updateItineraryItemPayload struct {
	Day       *int32   `json:"day"`
	Position  *int32   `json:"position"`
	Title     *string  `json:"title"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	StartTime *string  `json:"startTime"`
	Notes     *string  `json:"notes"`
}

func (s *APIV1Service) UpdateItineraryItem(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	item, err := s.Store.GetItineraryItem(ctx, &store.FindItineraryItem{UID: &uid})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get itinerary item").SetInternal(err)
	}
	if item == nil {
		return echo.NewHTTPError(http.StatusNotFound, "itinerary item not found")
	}

	payload := &updateItineraryItemPayload{}
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if payload.Day != nil && *payload.Day < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "day must be >= 1")
	}

	latitude := item.Latitude
	longitude := item.Longitude
	if payload.Latitude != nil {
		latitude = payload.Latitude
	}
	if payload.Longitude != nil {
		longitude = payload.Longitude
	}
	if err := validateItemCoordinates(latitude, longitude); err != nil {
		return err
	}

	if err := s.Store.UpdateItineraryItem(ctx, &store.UpdateItineraryItem{
		ID:        item.ID,
		Day:       payload.Day,
		Position:  payload.Position,
		Title:     payload.Title,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		StartTime: payload.StartTime,
		Notes:     payload.Notes,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update itinerary item").SetInternal(err)
	}

	updated, err := s.Store.GetItineraryItem(ctx, &store.FindItineraryItem{UID: &uid})
	if err != nil || updated == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reload itinerary item").SetInternal(err)
	}

	trip, err := s.Store.GetTrip(ctx, &store.FindTrip{ID: &updated.TripID})
	if err != nil || trip == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load trip").SetInternal(err)
	}

	return c.JSON(http.StatusOK, toItineraryItemResponse(updated, trip.UID))
}

func (s *APIV1Service) DeleteItineraryItem(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	item, err := s.Store.GetItineraryItem(ctx, &store.FindItineraryItem{UID: &uid})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get itinerary item").SetInternal(err)
	}
	if item == nil {
		return echo.NewHTTPError(http.StatusNotFound, "itinerary item not found")
	}

	if err := s.Store.DeleteItineraryItem(ctx, &store.DeleteItineraryItem{ID: item.ID}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete itinerary item").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}
