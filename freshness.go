package main

import "time"

// defaultMaxStaleness is how old a tracking ping may be before the vehicle is
// treated as a stalled or ended trip rather than delayed telemetry.
const defaultMaxStaleness = 15 * time.Minute

// isFresh reports whether an ISO-8601 recorded-at timestamp is no older than
// maxAge relative to now. Empty or unparsable timestamps classify as stale;
// upstream feeds are allowed to omit or malform this field, so parse failure
// is never an error. A record exactly maxAge old is still fresh.
func isFresh(recordedAt string, now time.Time, maxAge time.Duration) bool {
	if recordedAt == "" {
		return false
	}
	recorded, err := time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return false
	}
	return now.Sub(recorded) <= maxAge
}

// filterFresh keeps buses whose recorded-at timestamp passes isFresh,
// preserving input order.
func filterFresh(buses []Bus, now time.Time, maxAge time.Duration) []Bus {
	fresh := make([]Bus, 0, len(buses))
	for _, bus := range buses {
		if isFresh(bus.RecordedAt, now, maxAge) {
			fresh = append(fresh, bus)
		}
	}
	return fresh
}
