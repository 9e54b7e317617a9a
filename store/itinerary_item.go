package store

// ItineraryItem is a single planned stop on a trip day.
type ItineraryItem struct {
	ID  int32
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	TripID int32
	// Day is 1-based within the trip's date range.
	Day int32
	// Position orders items within a day.
	Position int32
	Title    string
	// Latitude/Longitude are optional; not every stop is pinned.
	Latitude  *float64
	Longitude *float64
	// StartTime is an optional HH:MM local time.
	StartTime *string
	// Notes is markdown.
	Notes string
}

type FindItineraryItem struct {
	ID     *int32
	UID    *string
	TripID *int32
	Day    *int32

	Limit  *int
	Offset *int
}

type UpdateItineraryItem struct {
	ID int32

	Day       *int32
	Position  *int32
	Title     *string
	Latitude  *float64
	Longitude *float64
	StartTime *string
	Notes     *string
}

type DeleteItineraryItem struct {
	ID int32
	// TripID, when set, deletes every item of the trip.
	TripID *int32
}
