package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripnavi/tripnavi/store"
)

func (d *DB) GetGuideCache(ctx context.Context, key string) (*store.GuideCacheRecord, error) {
	stmt := `SELECT cache_key, payload, updated_ts FROM guide_cache WHERE cache_key = ` + placeholder(1)

	var record store.GuideCacheRecord
	if err := d.db.QueryRowContext(ctx, stmt, key).Scan(
		&record.Key,
		&record.Payload,
		&record.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get guide cache record: %w", err)
	}

	return &record, nil
}

func (d *DB) UpsertGuideCache(ctx context.Context, upsert *store.GuideCacheRecord) error {
	stmt := `
		INSERT INTO guide_cache (cache_key, payload, updated_ts)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT (cache_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_ts = strftime('%s', 'now')`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.Key, upsert.Payload); err != nil {
		return fmt.Errorf("failed to upsert guide cache record: %w", err)
	}

	return nil
}

func (d *DB) DeleteGuideCache(ctx context.Context, key string) error {
	stmt := `DELETE FROM guide_cache WHERE cache_key = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, key); err != nil {
		return fmt.Errorf("failed to delete guide cache record: %w", err)
	}

	return nil
}
