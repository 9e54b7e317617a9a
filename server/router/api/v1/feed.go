package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/tripnavi/tripnavi/store"
)

const maxFeedItems = 50

// GetTripFeed renders a trip's itinerary as an Atom feed so calendar and
// reader apps can subscribe to plan changes.
func (s *APIV1Service) GetTripFeed(c echo.Context) error {
	ctx := c.Request().Context()

	trip, err := s.findTripByUID(c)
	if err != nil {
		return err
	}

	items, err := s.Store.ListItineraryItems(ctx, &store.FindItineraryItem{TripID: &trip.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list itinerary items").SetInternal(err)
	}
	if len(items) > maxFeedItems {
		items = items[:maxFeedItems]
	}

	baseURL := s.Profile.InstanceURL
	feed := &feeds.Feed{
		Title:       trip.Title,
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/trips/%s", baseURL, trip.UID)},
		Description: fmt.Sprintf("%s, %s to %s", trip.Destination, trip.StartDate, trip.EndDate),
		Created:     time.Unix(trip.CreatedTs, 0),
		Updated:     time.Unix(trip.UpdatedTs, 0),
	}

	for _, item := range items {
		title := fmt.Sprintf("Day %d: %s", item.Day, item.Title)
		description := item.Notes
		if description == "" {
			description = item.Title
		}
		if html, err := s.MarkdownService.Render(description); err == nil {
			description = html
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/items/%s", baseURL, item.UID),
			Title:       title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/trips/%s#%s", baseURL, trip.UID, item.UID)},
			Description: description,
			Created:     time.Unix(item.CreatedTs, 0),
			Updated:     time.Unix(item.UpdatedTs, 0),
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render feed").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "application/atom+xml", []byte(atom))
}
