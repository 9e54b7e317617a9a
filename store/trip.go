package store

// RowStatus is the status for a row.
type RowStatus string

const (
	// Normal is the status for a normal row.
	Normal RowStatus = "NORMAL"
	// Archived is the status for an archived row.
	Archived RowStatus = "ARCHIVED"
)

func (r RowStatus) String() string {
	return string(r)
}

// Trip is a planned journey with a destination and a day range.
type Trip struct {
	// ID is the system generated unique identifier.
	ID int32
	// UID is the user defined unique identifier.
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64
	RowStatus RowStatus

	// Domain specific fields
	Title       string
	Destination string
	// Currency is the ISO 4217 code of the destination currency.
	Currency  string
	Latitude  float64
	Longitude float64
	// StartDate and EndDate are ISO dates (YYYY-MM-DD).
	StartDate string
	EndDate   string
	// Notes is markdown.
	Notes string
}

type FindTrip struct {
	ID        *int32
	UID       *string
	RowStatus *RowStatus

	Limit  *int
	Offset *int
}

type UpdateTrip struct {
	ID int32

	UID         *string
	RowStatus   *RowStatus
	Title       *string
	Destination *string
	Currency    *string
	Latitude    *float64
	Longitude   *float64
	StartDate   *string
	EndDate     *string
	Notes       *string
}

type DeleteTrip struct {
	ID int32
}
