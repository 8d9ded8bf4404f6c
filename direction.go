package main

import "strings"

// parseCardinal normalizes a configured direction string. Matching is
// case-insensitive; anything outside the eight known directions comes back
// empty, which disables direction filtering rather than failing.
func parseCardinal(s string) Cardinal {
	c := Cardinal(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range cardinals {
		if c == known {
			return c
		}
	}
	return ""
}

// isInIgnoredSector reports whether a bus lies in the ignored direction as
// seen from the stop, i.e. it has most likely already passed. This is a
// coarse heuristic on the straight-line bearing only; it knows nothing about
// the route path.
//
// For the primary cardinals the excluded sector is a half circle centred on
// the direction (N covers NW through NE, and so on). The wide sector is
// deliberate: a bus a few degrees off the ignore cardinal is still past the
// stop, and the narrow eight-way sector would report it as approaching.
// Diagonal directions fall back to the narrow 45-degree sector.
func isInIgnoredSector(busLoc Location, stopLoc Location, ignore Cardinal) bool {
	if ignore == "" {
		return false
	}

	b := bearingDegrees(stopLoc, busLoc)

	switch ignore {
	case North:
		return b >= 270 || b < 90
	case East:
		return b >= 0 && b < 180
	case South:
		return b >= 90 && b < 270
	case West:
		return b >= 180
	default:
		return cardinalOf(b) == ignore
	}
}

// filterDirection removes buses sitting in the ignored sector relative to
// the stop. Buses without a position cannot be classified and are dropped.
// Order of the retained buses is preserved. An empty ignore direction keeps
// everything (position-less buses included; ranking drops those later).
func filterDirection(buses []Bus, stop BusStop, ignore Cardinal) []Bus {
	if ignore == "" {
		return buses
	}
	kept := make([]Bus, 0, len(buses))
	for _, bus := range buses {
		if bus.Location == nil {
			continue
		}
		if !isInIgnoredSector(*bus.Location, stop.Location, ignore) {
			kept = append(kept, bus)
		}
	}
	return kept
}
