// Package geo holds the coordinate type shared by the guide providers and
// the deliberately lossy key formatting used for cache keys.
package geo

import (
	"strconv"

	"github.com/pkg/errors"
)

// KeyPrecision is the number of decimal places kept when a coordinate is
// folded into a cache key. Four decimals is roughly 11 meters: queries that
// close together intentionally collapse to the same key to raise the hit
// rate.
const KeyPrecision = 4

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects coordinates outside the valid WGS84 range.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return errors.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return errors.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Key formats the coordinate as "lat,lon" rounded to KeyPrecision decimals.
// Two coordinates that round to the same precision produce the same key.
func (c Coordinate) Key() string {
	return strconv.FormatFloat(c.Latitude, 'f', KeyPrecision, 64) +
		"," +
		strconv.FormatFloat(c.Longitude, 'f', KeyPrecision, 64)
}
