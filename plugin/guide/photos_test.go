package guide

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnavi/tripnavi/internal/cache"
)

const wikipediaPhotoBody = `{"query":{"pages":{"12":{"title":"Fukuoka Tower","original":{"source":"https://upload.example/fukuoka-tower.jpg","width":1200,"height":1600}}}}}`

const wikipediaNoPhotoBody = `{"query":{"pages":{"12":{"title":"Fukuoka Tower"}}}}`

func TestPhotoFetchAndCache(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(wikipediaPhotoBody))
	service, _ := newTestService(t, upstream.URL())

	res := service.Photo(ctx, "Fukuoka Tower")
	require.Equal(t, StatusOK, res.Status)
	require.NotNil(t, res.Photo)
	assert.Equal(t, "https://upload.example/fukuoka-tower.jpg", res.Photo.URL)
	assert.Equal(t, 1200, res.Photo.Width)

	t.Run("query normalization shares the entry", func(t *testing.T) {
		res := service.Photo(ctx, "  fukuoka   TOWER ")
		require.Equal(t, StatusOK, res.Status)
		assert.Equal(t, int64(1), upstream.Calls())
	})
}

func TestPhotoConfirmedEmptyIsCached(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(wikipediaNoPhotoBody))
	service, _ := newTestService(t, upstream.URL())

	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	now := &clock
	// Re-point the photo cache at a controllable clock so expiry can be
	// tested without sleeping through a 24h TTL.
	service.photoCache = cache.NewWithClock[Photo](
		cache.NewMemoryBackend(), "photos", 24*time.Hour,
		func() time.Time { return *now },
	)

	res := service.Photo(ctx, "fukuoka tower")
	assert.Equal(t, StatusEmpty, res.Status)
	assert.Nil(t, res.Photo)
	require.Equal(t, int64(1), upstream.Calls())

	t.Run("cached empty served within ttl", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		res := service.Photo(ctx, "fukuoka tower")
		assert.Equal(t, StatusEmpty, res.Status)
		assert.Equal(t, int64(1), upstream.Calls(), "confirmed empty must not re-trigger the producer")
	})

	t.Run("expired empty triggers exactly one new fetch", func(t *testing.T) {
		clock = clock.Add(24 * time.Hour)
		res := service.Photo(ctx, "fukuoka tower")
		assert.Equal(t, StatusEmpty, res.Status)
		assert.Equal(t, int64(2), upstream.Calls())
	})
}

func TestPhotoRejectsBlankQuery(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(wikipediaPhotoBody))
	service, _ := newTestService(t, upstream.URL())

	res := service.Photo(ctx, "   ")
	assert.Equal(t, StatusInvalidInput, res.Status)
	assert.Equal(t, int64(0), upstream.Calls())
}
