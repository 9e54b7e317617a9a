package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"

	"github.com/tripnavi/tripnavi/internal/cache"
	"github.com/tripnavi/tripnavi/internal/profile"
	"github.com/tripnavi/tripnavi/plugin/guide"
	"github.com/tripnavi/tripnavi/plugin/markdown"
	"github.com/tripnavi/tripnavi/store"
	"github.com/tripnavi/tripnavi/store/db"
)

// newTestAPIService builds the API service over a throwaway sqlite store and
// a guide service whose providers all point at upstream, so no test ever
// leaves the process.
func newTestAPIService(t *testing.T, upstream string) *APIV1Service {
	testProfile := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   t.TempDir(),
	}
	testProfile.FromEnv()
	require.NoError(t, testProfile.Validate())

	dbDriver, err := db.NewDBDriver(testProfile)
	require.NoError(t, err)
	testStore := store.New(dbDriver, testProfile)
	require.NoError(t, testStore.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = testStore.Close()
	})

	guideService := guide.NewService(cache.NewMemoryBackend(), guide.Config{
		DirectionsBaseURL: upstream,
		PlacesBaseURL:     upstream,
		PhotosBaseURL:     upstream,
		WeatherBaseURL:    upstream,
		CurrencyBaseURL:   upstream,
		DirectionsTTL:     time.Hour,
		PlacesTTL:         time.Hour,
		PhotosTTL:         time.Hour,
		WeatherTTL:        time.Hour,
		CurrencyTTL:       time.Hour,
		RequestsPerSecond: 1000,
	})

	return &APIV1Service{
		Profile:         testProfile,
		Store:           testStore,
		Guide:           guideService,
		MarkdownService: markdown.NewService(),
		tipsSemaphore:   semaphore.NewWeighted(2),
	}
}

func newJSONContext(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func createTrip(t *testing.T, e *echo.Echo, s *APIV1Service, body string) tripResponse {
	c, rec := newJSONContext(e, http.MethodPost, body)
	require.NoError(t, s.CreateTrip(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestTripHandlers(t *testing.T) {
	e := echo.New()
	s := newTestAPIService(t, "http://127.0.0.1:1")

	trip := createTrip(t, e, s, `{
		"title": "Kyushu in autumn",
		"destination": "Fukuoka, Japan",
		"currency": "jpy",
		"latitude": 33.5902,
		"longitude": 130.4017,
		"startDate": "2026-10-01",
		"endDate": "2026-10-07",
		"notes": "**Ramen** first."
	}`)
	require.NotEmpty(t, trip.UID)
	assert.Equal(t, "JPY", trip.Currency)
	assert.Contains(t, trip.NotesHTML, "<strong>Ramen</strong>")

	t.Run("create rejects missing title", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPost, `{"title": "  ", "latitude": 0, "longitude": 0}`)
		err := s.CreateTrip(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("create rejects out-of-range coordinates", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPost, `{"title": "Bad", "latitude": 91, "longitude": 0}`)
		err := s.CreateTrip(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("get by uid", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodGet, "")
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		require.NoError(t, s.GetTrip(c))

		var resp tripResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Kyushu in autumn", resp.Title)
	})

	t.Run("get unknown uid is 404", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodGet, "")
		c.SetParamNames("uid")
		c.SetParamValues("no-such-trip")
		err := s.GetTrip(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, err.(*echo.HTTPError).Code)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPatch, `{"title": "Kyushu, extended"}`)
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		require.NoError(t, s.UpdateTrip(c))

		var resp tripResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Kyushu, extended", resp.Title)
		assert.Equal(t, "Fukuoka, Japan", resp.Destination)
	})

	t.Run("archive hides trip from default listing", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPatch, `{"rowStatus": "ARCHIVED"}`)
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		require.NoError(t, s.UpdateTrip(c))

		c, rec := newJSONContext(e, http.MethodGet, "")
		require.NoError(t, s.ListTrips(c))
		var listed []tripResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Empty(t, listed)

		req := httptest.NewRequest(http.MethodGet, "/?state=archived", nil)
		rec = httptest.NewRecorder()
		require.NoError(t, s.ListTrips(e.NewContext(req, rec)))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Len(t, listed, 1)
	})

	t.Run("delete", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodDelete, "")
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		require.NoError(t, s.DeleteTrip(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestItineraryItemHandlers(t *testing.T) {
	e := echo.New()
	s := newTestAPIService(t, "http://127.0.0.1:1")

	trip := createTrip(t, e, s, `{
		"title": "Lisbon weekend",
		"destination": "Lisbon, Portugal",
		"currency": "EUR",
		"latitude": 38.7223,
		"longitude": -9.1393,
		"startDate": "2026-09-12",
		"endDate": "2026-09-14"
	}`)

	createItem := func(body string) itineraryItemResponse {
		c, rec := newJSONContext(e, http.MethodPost, body)
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		require.NoError(t, s.CreateItineraryItem(c))

		var resp itineraryItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := createItem(`{"day": 1, "position": 1, "title": "Belem Tower", "latitude": 38.6916, "longitude": -9.2160}`)
	createItem(`{"day": 2, "position": 1, "title": "Alfama walk"}`)

	t.Run("create rejects lone latitude", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPost, `{"day": 1, "title": "Broken", "latitude": 38.7}`)
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		err := s.CreateItineraryItem(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("list filters by day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?day=1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("uid")
		c.SetParamValues(trip.UID)
		require.NoError(t, s.ListItineraryItems(c))

		var listed []itineraryItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "Belem Tower", listed[0].Title)
	})

	t.Run("update moves item to another day", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPatch, `{"day": 2, "position": 2}`)
		c.SetParamNames("uid")
		c.SetParamValues(first.UID)
		require.NoError(t, s.UpdateItineraryItem(c))

		var resp itineraryItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int32(2), resp.Day)
		assert.Equal(t, int32(2), resp.Position)
	})

	t.Run("delete unknown item is 404", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodDelete, "")
		c.SetParamNames("uid")
		c.SetParamValues("no-such-item")
		err := s.DeleteItineraryItem(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, err.(*echo.HTTPError).Code)
	})
}

func TestGetDaySummaryDegradesPerProvider(t *testing.T) {
	// Weather answers, everything else is a hard 500. The summary must still
	// come back 200 with per-provider statuses.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/forecast") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"current_weather": {"temperature": 17.4, "windspeed": 9.1, "weathercode": 2, "time": "2026-08-26T09:00"}}`))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	e := echo.New()
	s := newTestAPIService(t, upstream.URL)

	trip := createTrip(t, e, s, `{
		"title": "Fukuoka food crawl",
		"destination": "Fukuoka, Japan",
		"currency": "JPY",
		"latitude": 33.5902,
		"longitude": 130.4017,
		"startDate": "2026-10-01",
		"endDate": "2026-10-03"
	}`)

	c, rec := newJSONContext(e, http.MethodGet, "")
	c.SetParamNames("uid", "day")
	c.SetParamValues(trip.UID, "1")
	require.NoError(t, s.GetDaySummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary daySummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, int32(1), summary.Day)
	assert.Equal(t, guide.StatusOK, summary.Weather.Status)
	assert.Equal(t, 17.4, summary.Weather.Weather.TemperatureC)
	assert.Equal(t, guide.StatusUnavailable, summary.Restaurants.Status)
	assert.Equal(t, guide.StatusUnavailable, summary.Photo.Status)
	assert.Equal(t, guide.StatusUnavailable, summary.Rate.Status)
}

func TestGetTravelTipsWithoutAIConfigured(t *testing.T) {
	e := echo.New()
	s := newTestAPIService(t, "http://127.0.0.1:1")

	trip := createTrip(t, e, s, `{
		"title": "Porto",
		"destination": "Porto, Portugal",
		"currency": "EUR",
		"latitude": 41.1579,
		"longitude": -8.6291
	}`)

	c, rec := newJSONContext(e, http.MethodGet, "")
	c.SetParamNames("uid")
	c.SetParamValues(trip.UID)
	require.NoError(t, s.GetTravelTips(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp travelTipsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.Empty(t, resp.TipsMarkdown)
}

func TestGetTripFeed(t *testing.T) {
	e := echo.New()
	s := newTestAPIService(t, "http://127.0.0.1:1")
	s.Profile.InstanceURL = "https://trips.example.com"

	trip := createTrip(t, e, s, `{
		"title": "Kyoto temples",
		"destination": "Kyoto, Japan",
		"currency": "JPY",
		"latitude": 35.0116,
		"longitude": 135.7681,
		"startDate": "2026-11-02",
		"endDate": "2026-11-05"
	}`)

	c, rec := newJSONContext(e, http.MethodPost, `{"day": 1, "position": 1, "title": "Kinkaku-ji", "notes": "Arrive before nine."}`)
	c.SetParamNames("uid")
	c.SetParamValues(trip.UID)
	require.NoError(t, s.CreateItineraryItem(c))

	c, rec = newJSONContext(e, http.MethodGet, "")
	c.SetParamNames("uid")
	c.SetParamValues(trip.UID)
	require.NoError(t, s.GetTripFeed(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/atom+xml", rec.Header().Get(echo.HeaderContentType))
	body := rec.Body.String()
	assert.Contains(t, body, "Kyoto temples")
	assert.Contains(t, body, "Day 1: Kinkaku-ji")
	assert.Contains(t, body, "https://trips.example.com/trips/"+trip.UID)
}
