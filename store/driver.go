package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Trip model related methods.
	CreateTrip(ctx context.Context, create *Trip) (*Trip, error)
	ListTrips(ctx context.Context, find *FindTrip) ([]*Trip, error)
	UpdateTrip(ctx context.Context, update *UpdateTrip) error
	DeleteTrip(ctx context.Context, delete *DeleteTrip) error

	// ItineraryItem model related methods.
	CreateItineraryItem(ctx context.Context, create *ItineraryItem) (*ItineraryItem, error)
	ListItineraryItems(ctx context.Context, find *FindItineraryItem) ([]*ItineraryItem, error)
	UpdateItineraryItem(ctx context.Context, update *UpdateItineraryItem) error
	DeleteItineraryItem(ctx context.Context, delete *DeleteItineraryItem) error

	// GuideCache record related methods.
	GetGuideCache(ctx context.Context, key string) (*GuideCacheRecord, error)
	UpsertGuideCache(ctx context.Context, upsert *GuideCacheRecord) error
	DeleteGuideCache(ctx context.Context, key string) error
}
