package model

import "time"

// now is UTC at microsecond precision, the resolution PostgreSQL stores, so
// snapshots hash identically before and after a round trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
