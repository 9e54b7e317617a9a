package store

import (
	"context"

	"github.com/tripnavi/tripnavi/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateTrip(ctx context.Context, create *Trip) (*Trip, error) {
	return s.driver.CreateTrip(ctx, create)
}

func (s *Store) ListTrips(ctx context.Context, find *FindTrip) ([]*Trip, error) {
	return s.driver.ListTrips(ctx, find)
}

// GetTrip returns the single trip matching find, or nil when absent.
func (s *Store) GetTrip(ctx context.Context, find *FindTrip) (*Trip, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.driver.ListTrips(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateTrip(ctx context.Context, update *UpdateTrip) error {
	return s.driver.UpdateTrip(ctx, update)
}

func (s *Store) DeleteTrip(ctx context.Context, delete *DeleteTrip) error {
	return s.driver.DeleteTrip(ctx, delete)
}

func (s *Store) CreateItineraryItem(ctx context.Context, create *ItineraryItem) (*ItineraryItem, error) {
	return s.driver.CreateItineraryItem(ctx, create)
}

func (s *Store) ListItineraryItems(ctx context.Context, find *FindItineraryItem) ([]*ItineraryItem, error) {
	return s.driver.ListItineraryItems(ctx, find)
}

// GetItineraryItem returns the single item matching find, or nil when absent.
func (s *Store) GetItineraryItem(ctx context.Context, find *FindItineraryItem) (*ItineraryItem, error) {
	list, err := s.driver.ListItineraryItems(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateItineraryItem(ctx context.Context, update *UpdateItineraryItem) error {
	return s.driver.UpdateItineraryItem(ctx, update)
}

func (s *Store) DeleteItineraryItem(ctx context.Context, delete *DeleteItineraryItem) error {
	return s.driver.DeleteItineraryItem(ctx, delete)
}
