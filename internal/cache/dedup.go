package cache

import (
	"golang.org/x/sync/singleflight"
)

// Group de-duplicates concurrent in-flight fetches for the same key: while a
// producer is running, additional callers for that key wait on the same
// outstanding call instead of starting their own. The key clears as soon as
// the call settles, success or failure, so a failed fetch never wedges a key.
// Failures are returned to every waiter and are not retried here.
type Group[V any] struct {
	sf singleflight.Group
}

// Do runs producer for key unless an equivalent call is already in flight,
// in which case it waits for that call and returns its result. shared reports
// whether the result was given to more than one caller.
func (g *Group[V]) Do(key string, producer func() (V, error)) (value V, err error, shared bool) {
	v, err, shared := g.sf.Do(key, func() (any, error) {
		return producer()
	})
	if err != nil {
		var zero V
		return zero, err, shared
	}
	return v.(V), nil, shared
}
