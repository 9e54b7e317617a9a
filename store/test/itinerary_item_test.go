package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tripnavi/tripnavi/store"
)

func TestItineraryItemStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)
	trip := createTestingTrip(ctx, t, ts, "trip-items")

	lat, lon := 33.5903, 130.4202
	startTime := "11:30"
	createItem := func(uid string, day, position int32) *store.ItineraryItem {
		item, err := ts.CreateItineraryItem(ctx, &store.ItineraryItem{
			UID:       uid,
			TripID:    trip.ID,
			Day:       day,
			Position:  position,
			Title:     "Stop " + uid,
			Latitude:  &lat,
			Longitude: &lon,
			StartTime: &startTime,
			Notes:     "check opening hours",
		})
		require.NoError(t, err)
		return item
	}

	// Insert out of order so the listing has something to sort.
	createItem("item-d2-p1", 2, 1)
	first := createItem("item-d1-p2", 1, 2)
	createItem("item-d1-p1", 1, 1)

	t.Run("list orders by day then position", func(t *testing.T) {
		list, err := ts.ListItineraryItems(ctx, &store.FindItineraryItem{TripID: &trip.ID})
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "item-d1-p1", list[0].UID)
		require.Equal(t, "item-d1-p2", list[1].UID)
		require.Equal(t, "item-d2-p1", list[2].UID)
	})

	t.Run("list filters day", func(t *testing.T) {
		day := int32(1)
		list, err := ts.ListItineraryItems(ctx, &store.FindItineraryItem{TripID: &trip.ID, Day: &day})
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, item := range list {
			require.Equal(t, int32(1), item.Day)
		}
	})

	t.Run("optional coordinates round-trip", func(t *testing.T) {
		unpinned, err := ts.CreateItineraryItem(ctx, &store.ItineraryItem{
			UID:    "item-unpinned",
			TripID: trip.ID,
			Day:    3,
			Title:  "Free morning",
		})
		require.NoError(t, err)
		require.Nil(t, unpinned.Latitude)
		require.Nil(t, unpinned.Longitude)
		require.Nil(t, unpinned.StartTime)

		uid := "item-d1-p1"
		pinned, err := ts.GetItineraryItem(ctx, &store.FindItineraryItem{UID: &uid})
		require.NoError(t, err)
		require.NotNil(t, pinned.Latitude)
		require.Equal(t, lat, *pinned.Latitude)
		require.Equal(t, "11:30", *pinned.StartTime)
	})

	t.Run("update moves item", func(t *testing.T) {
		day, position := int32(2), int32(5)
		title := "Moved stop"
		err := ts.UpdateItineraryItem(ctx, &store.UpdateItineraryItem{
			ID:       first.ID,
			Day:      &day,
			Position: &position,
			Title:    &title,
		})
		require.NoError(t, err)

		moved, err := ts.GetItineraryItem(ctx, &store.FindItineraryItem{ID: &first.ID})
		require.NoError(t, err)
		require.Equal(t, int32(2), moved.Day)
		require.Equal(t, int32(5), moved.Position)
		require.Equal(t, "Moved stop", moved.Title)
	})

	t.Run("delete single", func(t *testing.T) {
		err := ts.DeleteItineraryItem(ctx, &store.DeleteItineraryItem{ID: first.ID})
		require.NoError(t, err)

		found, err := ts.GetItineraryItem(ctx, &store.FindItineraryItem{ID: &first.ID})
		require.NoError(t, err)
		require.Nil(t, found)
	})

	t.Run("delete by trip clears the rest", func(t *testing.T) {
		err := ts.DeleteItineraryItem(ctx, &store.DeleteItineraryItem{TripID: &trip.ID})
		require.NoError(t, err)

		list, err := ts.ListItineraryItems(ctx, &store.FindItineraryItem{TripID: &trip.ID})
		require.NoError(t, err)
		require.Empty(t, list)
	})
}
