package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/tripnavi/tripnavi/internal/profile"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database specified by its database driver name and a
// driver-specific data source name, usually consisting of at least a
// database name and connection information.
func NewDB(profile *profile.Profile) (*DB, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// Open the database with WAL and foreign keys enabled. The busy timeout
	// keeps short writer contention from surfacing as SQLITE_BUSY.
	dsn := profile.DSN + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"
	sqliteDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", dsn)
	}

	driver := DB{db: sqliteDB, profile: profile}
	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// IsInitialized reports whether the schema has been applied.
func (d *DB) IsInitialized(ctx context.Context) (bool, error) {
	var count int
	stmt := "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'trip'"
	if err := d.db.QueryRowContext(ctx, stmt).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
