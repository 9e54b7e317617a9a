package guide

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frankfurterBody = `{"base":"USD","date":"2025-06-01","rates":{"JPY":142.35}}`

func TestExchangeRateFetchAndCache(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(frankfurterBody))
	service, _ := newTestService(t, upstream.URL())

	res := service.ExchangeRate(ctx, "usd", "jpy")
	require.Equal(t, StatusOK, res.Status)
	require.NotNil(t, res.Rate)
	assert.Equal(t, "USD", res.Rate.Base)
	assert.Equal(t, "JPY", res.Rate.Quote)
	assert.Equal(t, 142.35, res.Rate.Rate)

	t.Run("second lookup is served from cache", func(t *testing.T) {
		res := service.ExchangeRate(ctx, "USD", "JPY")
		require.Equal(t, StatusOK, res.Status)
		assert.Equal(t, int64(1), upstream.Calls())
	})
}

func TestExchangeRateIdentityPair(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(frankfurterBody))
	service, _ := newTestService(t, upstream.URL())

	res := service.ExchangeRate(ctx, "EUR", "EUR")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, float64(1), res.Rate.Rate)
	assert.Equal(t, int64(0), upstream.Calls(), "identity pairs never hit the provider")
}

func TestExchangeRateInvalidCodes(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(frankfurterBody))
	service, _ := newTestService(t, upstream.URL())

	for _, pair := range [][2]string{{"US", "JPY"}, {"USDA", "JPY"}, {"USD", "12X"}, {"", "JPY"}} {
		res := service.ExchangeRate(ctx, pair[0], pair[1])
		assert.Equal(t, StatusInvalidInput, res.Status, "pair %v", pair)
	}
	assert.Equal(t, int64(0), upstream.Calls())
}

func TestExchangeRateDegradesWhenProviderFails(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	service, _ := newTestService(t, upstream.URL())

	res := service.ExchangeRate(ctx, "USD", "JPY")
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.Nil(t, res.Rate)
}

func TestExchangeRateMissingQuoteInResponse(t *testing.T) {
	ctx := context.Background()
	upstream := newProviderServer(t, jsonResponse(`{"base":"USD","date":"2025-06-01","rates":{}}`))
	service, _ := newTestService(t, upstream.URL())

	res := service.ExchangeRate(ctx, "USD", "JPY")
	assert.Equal(t, StatusUnavailable, res.Status)
}
