package main

// Location is a geographic coordinate in decimal degrees.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Bus is the normalized vehicle record produced by a feed source. Feeds may
// omit the position or the recorded-at timestamp; missing refs default to
// "Unknown". Records live for one poll cycle and are never mutated.
type Bus struct {
	LineRef         string    `json:"lineRef"`
	OperatorRef     string    `json:"operatorRef"`
	OriginRef       string    `json:"originRef"`
	DestinationRef  string    `json:"destinationRef"`
	VehicleRef      string    `json:"vehicleRef"`
	OriginName      string    `json:"originName"`
	DestinationName string    `json:"destinationName"`
	RecordedAt      string    `json:"recordedAt"`
	Location        *Location `json:"location,omitempty"`
}

// BusStop is the fixed observation point distances are measured from.
type BusStop struct {
	Name     string
	StopRef  string
	Location Location
}

// RankedBus pairs a bus with its computed distance and direction from the
// stop. Valid only within the ranking cycle that produced it.
type RankedBus struct {
	Bus
	DistanceMeters float64  `json:"distanceMeters"`
	Direction      Cardinal `json:"direction"`
}
