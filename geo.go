package main

import "math"

const earthRadiusMeters = 6371000

// Cardinal is one of the eight compass directions, or "" for none.
type Cardinal string

const (
	North     Cardinal = "N"
	NorthEast Cardinal = "NE"
	East      Cardinal = "E"
	SouthEast Cardinal = "SE"
	South     Cardinal = "S"
	SouthWest Cardinal = "SW"
	West      Cardinal = "W"
	NorthWest Cardinal = "NW"
)

var cardinals = [8]Cardinal{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// distanceMeters returns the great-circle distance between two locations
// using the haversine formula. The square-root argument is clamped so
// antipodal points and floating-point overshoot never produce NaN.
func distanceMeters(a, b Location) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dlat := radians(b.Latitude - a.Latitude)
	dlon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	h = math.Min(math.Max(h, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// bearingDegrees returns the initial bearing from one location toward
// another, normalized to [0, 360). 0 is north, 90 east. The result for two
// identical locations is unspecified; callers must not rely on it.
func bearingDegrees(from, to Location) float64 {
	lat1 := radians(from.Latitude)
	lat2 := radians(to.Latitude)
	dlon := radians(to.Longitude - from.Longitude)

	x := math.Sin(dlon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)

	deg := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// cardinalOf maps a bearing to the nearest of the eight compass directions.
// Sectors are 45 degrees wide and centered on each direction, so 337.5-22.5
// is N, 22.5-67.5 is NE, and so on.
func cardinalOf(bearing float64) Cardinal {
	idx := int(math.Round(bearing/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return cardinals[idx]
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
