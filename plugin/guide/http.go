package guide

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// maxResponseBytes bounds provider response bodies; the largest legitimate
// payload (a long route geometry) stays well under this.
const maxResponseBytes = 4 << 20

// httpClient is the shared outbound client. A single politeness limiter
// covers all providers since they are public, rate-limited services.
type httpClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func newHTTPClient(timeout time.Duration, requestsPerSecond float64, userAgent string) *httpClient {
	return &httpClient{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		userAgent: userAgent,
	}
}

func (c *httpClient) getJSON(ctx context.Context, rawURL string, out any) error {
	return c.doJSON(ctx, http.MethodGet, rawURL, "", nil, out)
}

func (c *httpClient) postFormJSON(ctx context.Context, rawURL string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.doJSON(ctx, http.MethodPost, rawURL, "application/x-www-form-urlencoded", body, out)
}

func (c *httpClient) doJSON(ctx context.Context, method, rawURL, contentType string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter wait canceled")
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 512)
		return errors.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := decoder.Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
