package guide

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/tripnavi/tripnavi/internal/cache"
)

// Photo is remote photo metadata for a place or landmark.
type Photo struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PhotoResult is the typed outcome of a photo lookup. StatusEmpty means the
// provider was asked and there is no photo for this query; that answer is
// cached so the same miss does not trigger a fetch on every render.
type PhotoResult struct {
	Status Status `json:"status"`
	Photo  *Photo `json:"photo,omitempty"`
}

// Photo looks up a representative photo for a free-text place query.
func (s *Service) Photo(ctx context.Context, query string) PhotoResult {
	normalized := normalizePhotoQuery(query)
	if normalized == "" {
		return PhotoResult{Status: StatusInvalidInput}
	}

	switch res := s.photoCache.Get(ctx, normalized); res.State {
	case cache.Hit:
		photo := res.Value
		return PhotoResult{Status: StatusOK, Photo: &photo}
	case cache.HitEmpty:
		return PhotoResult{Status: StatusEmpty}
	}

	photo, found, err := s.fetchPhoto(ctx, query)
	if err != nil {
		slog.Warn("photo fetch failed", "query", normalized, "error", err)
		return PhotoResult{Status: StatusUnavailable}
	}

	if !found {
		s.photoCache.SetEmpty(ctx, normalized)
		return PhotoResult{Status: StatusEmpty}
	}
	s.photoCache.Set(ctx, normalized, photo)
	return PhotoResult{Status: StatusOK, Photo: &photo}
}

func normalizePhotoQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

type wikipediaPageImageResponse struct {
	Query struct {
		Pages map[string]struct {
			Title    string `json:"title"`
			Original *struct {
				Source string `json:"source"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"original"`
		} `json:"pages"`
	} `json:"query"`
}

func (s *Service) fetchPhoto(ctx context.Context, query string) (Photo, bool, error) {
	params := url.Values{
		"action":    {"query"},
		"format":    {"json"},
		"prop":      {"pageimages"},
		"piprop":    {"original"},
		"redirects": {"1"},
		"titles":    {query},
	}

	var resp wikipediaPageImageResponse
	if err := s.client.getJSON(ctx, s.config.PhotosBaseURL+"?"+params.Encode(), &resp); err != nil {
		return Photo{}, false, err
	}

	for _, page := range resp.Query.Pages {
		if page.Original != nil && page.Original.Source != "" {
			return Photo{
				Title:  page.Title,
				URL:    page.Original.Source,
				Width:  page.Original.Width,
				Height: page.Original.Height,
			}, true, nil
		}
	}
	// The provider answered and there is no photo: a confirmed empty result.
	return Photo{}, false, nil
}
