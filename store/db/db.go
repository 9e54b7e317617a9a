package db

import (
	"github.com/pkg/errors"

	"github.com/tripnavi/tripnavi/internal/profile"
	"github.com/tripnavi/tripnavi/store"
	"github.com/tripnavi/tripnavi/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' is supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
