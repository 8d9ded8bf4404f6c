package main

import (
	"sort"
	"time"
)

// rank runs the full filtering pipeline over one poll cycle's snapshot:
// drop stale records, drop buses in the ignored sector, compute distance and
// direction from the stop for the rest, and order them nearest first. The
// sort is stable, so buses at identical distances keep feed order. The full
// list is returned; truncating to a display row budget is the renderer's
// job. rank holds no state between calls.
func rank(buses []Bus, stop BusStop, now time.Time, maxAge time.Duration, ignore Cardinal) []RankedBus {
	fresh := filterFresh(buses, now, maxAge)
	approaching := filterDirection(fresh, stop, ignore)

	ranked := make([]RankedBus, 0, len(approaching))
	for _, bus := range approaching {
		if bus.Location == nil {
			continue
		}
		ranked = append(ranked, RankedBus{
			Bus:            bus,
			DistanceMeters: distanceMeters(stop.Location, *bus.Location),
			Direction:      cardinalOf(bearingDegrees(stop.Location, *bus.Location)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})
	return ranked
}
