package guide

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/tripnavi/tripnavi/internal/cache"
)

// ExchangeRate is the conversion rate from Base to Quote.
type ExchangeRate struct {
	Base  string  `json:"base"`
	Quote string  `json:"quote"`
	Rate  float64 `json:"rate"`
	// Date is the provider's quote date (YYYY-MM-DD).
	Date string `json:"date"`
}

// ExchangeRateResult is the typed outcome of a rate lookup.
type ExchangeRateResult struct {
	Status Status        `json:"status"`
	Rate   *ExchangeRate `json:"rate,omitempty"`
}

// ExchangeRate returns the conversion rate between two ISO 4217 codes.
func (s *Service) ExchangeRate(ctx context.Context, base, quote string) ExchangeRateResult {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if !isCurrencyCode(base) || !isCurrencyCode(quote) {
		return ExchangeRateResult{Status: StatusInvalidInput}
	}
	if base == quote {
		rate := ExchangeRate{Base: base, Quote: quote, Rate: 1}
		return ExchangeRateResult{Status: StatusOK, Rate: &rate}
	}

	key := base + ":" + quote
	if res := s.currencyCache.Get(ctx, key); res.State == cache.Hit {
		rate := res.Value
		return ExchangeRateResult{Status: StatusOK, Rate: &rate}
	}

	rate, err := s.fetchExchangeRate(ctx, base, quote)
	if err != nil {
		slog.Warn("exchange rate fetch failed", "key", key, "error", err)
		return ExchangeRateResult{Status: StatusUnavailable}
	}

	s.currencyCache.Set(ctx, key, rate)
	return ExchangeRateResult{Status: StatusOK, Rate: &rate}
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

type frankfurterResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (s *Service) fetchExchangeRate(ctx context.Context, base, quote string) (ExchangeRate, error) {
	url := fmt.Sprintf("%s/v1/latest?base=%s&symbols=%s", s.config.CurrencyBaseURL, base, quote)

	var resp frankfurterResponse
	if err := s.client.getJSON(ctx, url, &resp); err != nil {
		return ExchangeRate{}, err
	}

	rate, ok := resp.Rates[quote]
	if !ok {
		return ExchangeRate{}, errors.Errorf("provider returned no rate for %s", quote)
	}

	return ExchangeRate{Base: base, Quote: quote, Rate: rate, Date: resp.Date}, nil
}
