package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripnavi/tripnavi/store"
)

func (d *DB) CreateTrip(ctx context.Context, create *store.Trip) (*store.Trip, error) {
	fields := []string{
		"uid", "title", "destination", "currency",
		"latitude", "longitude", "start_date", "end_date", "notes",
	}
	placeholderValues := []any{
		create.UID, create.Title, create.Destination, create.Currency,
		create.Latitude, create.Longitude, create.StartDate, create.EndDate, create.Notes,
	}

	stmt := `INSERT INTO trip (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts, row_status`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return create, nil
}

func (d *DB) ListTrips(ctx context.Context, find *store.FindTrip) ([]*store.Trip, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "trip.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "trip.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "trip.row_status = "+placeholder(len(args)+1)), append(args, v.String())
	}

	query := `
		SELECT
			id, uid, created_ts, updated_ts, row_status,
			title, destination, currency,
			latitude, longitude, start_date, end_date, notes
		FROM trip
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY trip.start_date DESC, trip.id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Trip, 0)
	for rows.Next() {
		var trip store.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.UID,
			&trip.CreatedTs,
			&trip.UpdatedTs,
			&trip.RowStatus,
			&trip.Title,
			&trip.Destination,
			&trip.Currency,
			&trip.Latitude,
			&trip.Longitude,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		list = append(list, &trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateTrip(ctx context.Context, update *store.UpdateTrip) error {
	set, args := []string{}, []any{}

	if v := update.UID; v != nil {
		set, args = append(set, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, v.String())
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Destination; v != nil {
		set, args = append(set, "destination = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Currency; v != nil {
		set, args = append(set, "currency = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Latitude; v != nil {
		set, args = append(set, "latitude = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Longitude; v != nil {
		set, args = append(set, "longitude = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.StartDate; v != nil {
		set, args = append(set, "start_date = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.EndDate; v != nil {
		set, args = append(set, "end_date = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}

	// If no fields to update, return early
	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := `UPDATE trip SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	return nil
}

func (d *DB) DeleteTrip(ctx context.Context, delete *store.DeleteTrip) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM itinerary_item WHERE trip_id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete trip items: %w", err)
	}

	result, err := d.db.ExecContext(ctx, `DELETE FROM trip WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("trip not found")
	}

	return nil
}
