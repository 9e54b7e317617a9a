package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tripnavi/tripnavi/store"
)

func (d *DB) CreateItineraryItem(ctx context.Context, create *store.ItineraryItem) (*store.ItineraryItem, error) {
	fields := []string{"uid", "trip_id", "day", "position", "title", "notes"}
	placeholderValues := []any{
		create.UID, create.TripID, create.Day, create.Position, create.Title, create.Notes,
	}

	if create.Latitude != nil {
		fields = append(fields, "latitude")
		placeholderValues = append(placeholderValues, *create.Latitude)
	}
	if create.Longitude != nil {
		fields = append(fields, "longitude")
		placeholderValues = append(placeholderValues, *create.Longitude)
	}
	if create.StartTime != nil {
		fields = append(fields, "start_time")
		placeholderValues = append(placeholderValues, *create.StartTime)
	}

	stmt := `INSERT INTO itinerary_item (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create itinerary item: %w", err)
	}

	return create, nil
}

func (d *DB) ListItineraryItems(ctx context.Context, find *store.FindItineraryItem) ([]*store.ItineraryItem, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "itinerary_item.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "itinerary_item.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.TripID; v != nil {
		where, args = append(where, "itinerary_item.trip_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Day; v != nil {
		where, args = append(where, "itinerary_item.day = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, created_ts, updated_ts,
			trip_id, day, position, title,
			latitude, longitude, start_time, notes
		FROM itinerary_item
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY itinerary_item.day ASC, itinerary_item.position ASC, itinerary_item.id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary items: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ItineraryItem, 0)
	for rows.Next() {
		var item store.ItineraryItem
		var latitude, longitude sql.NullFloat64
		var startTime sql.NullString

		if err := rows.Scan(
			&item.ID,
			&item.UID,
			&item.CreatedTs,
			&item.UpdatedTs,
			&item.TripID,
			&item.Day,
			&item.Position,
			&item.Title,
			&latitude,
			&longitude,
			&startTime,
			&item.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}

		if latitude.Valid {
			item.Latitude = &latitude.Float64
		}
		if longitude.Valid {
			item.Longitude = &longitude.Float64
		}
		if startTime.Valid {
			item.StartTime = &startTime.String
		}

		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itinerary items: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateItineraryItem(ctx context.Context, update *store.UpdateItineraryItem) error {
	set, args := []string{}, []any{}

	if v := update.Day; v != nil {
		set, args = append(set, "day = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Position; v != nil {
		set, args = append(set, "position = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Latitude; v != nil {
		set, args = append(set, "latitude = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Longitude; v != nil {
		set, args = append(set, "longitude = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.StartTime; v != nil {
		set, args = append(set, "start_time = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := `UPDATE itinerary_item SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update itinerary item: %w", err)
	}

	return nil
}

func (d *DB) DeleteItineraryItem(ctx context.Context, delete *store.DeleteItineraryItem) error {
	if v := delete.TripID; v != nil {
		if _, err := d.db.ExecContext(ctx, `DELETE FROM itinerary_item WHERE trip_id = `+placeholder(1), *v); err != nil {
			return fmt.Errorf("failed to delete itinerary items: %w", err)
		}
		return nil
	}

	result, err := d.db.ExecContext(ctx, `DELETE FROM itinerary_item WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("itinerary item not found")
	}

	return nil
}
