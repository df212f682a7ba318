package radiru

import "time"

// IsStale reports whether a cache last modified at lastModified must be
// refetched at now. The cache is stale once the calendar month changes,
// evaluated in now's time zone, no matter how little time has passed.
func IsStale(now, lastModified time.Time) bool {
	lm := lastModified.In(now.Location())
	return lm.Year() != now.Year() || lm.Month() != now.Month()
}
