package main

import (
	"fmt"
	"time"
)

// Arrival-state thresholds and the progress-bar distance scale. These are
// presentation policy, deliberately kept out of the ranking pipeline.
const (
	arrivingMeters  = 100
	leaveNowMeters  = 1000
	progressScaleKM = 20.0
	clockTimeLayout = "15:04:05"
)

// ArrivalState tells the display what to draw on the right side of a row.
type ArrivalState string

const (
	StateArriving ArrivalState = "arriving"
	StateLeaveNow ArrivalState = "leaveNow"
	StateEnRoute  ArrivalState = "enRoute"
)

// Row is one display line: order number, line ref, distance text, and
// either an urgency label or a progress-bar fill.
type Row struct {
	Position        int          `json:"position"`
	LineRef         string       `json:"lineRef"`
	VehicleRef      string       `json:"vehicleRef"`
	DestinationName string       `json:"destinationName"`
	Direction       Cardinal     `json:"direction"`
	DistanceMeters  float64      `json:"distanceMeters"`
	DistanceText    string       `json:"distanceText"`
	State           ArrivalState `json:"state"`
	// Progress is the bar fill in [0,1]; closer buses fill more of the bar.
	// Only meaningful when State is enRoute.
	Progress float64 `json:"progress"`
}

// Frame is one complete repaint of the display: up to maxRows bus rows plus
// the wall clock.
type Frame struct {
	StopName string    `json:"stopName"`
	Clock    string    `json:"clock"`
	Rows     []Row     `json:"rows"`
	Rendered time.Time `json:"-"`
}

// buildFrame converts the ranked list into the display model, truncating to
// the row budget.
func buildFrame(ranked []RankedBus, stop BusStop, now time.Time, maxRows int) Frame {
	if len(ranked) > maxRows {
		ranked = ranked[:maxRows]
	}
	rows := make([]Row, 0, len(ranked))
	for i, rb := range ranked {
		km := rb.DistanceMeters / 1000.0
		row := Row{
			Position:        i + 1,
			LineRef:         rb.LineRef,
			VehicleRef:      rb.VehicleRef,
			DestinationName: rb.DestinationName,
			Direction:       rb.Direction,
			DistanceMeters:  rb.DistanceMeters,
			DistanceText:    fmt.Sprintf("%.1fkm away", km),
		}
		switch {
		case rb.DistanceMeters < arrivingMeters:
			row.State = StateArriving
		case rb.DistanceMeters < leaveNowMeters:
			row.State = StateLeaveNow
		default:
			row.State = StateEnRoute
			row.Progress = progressFill(km)
		}
		rows = append(rows, row)
	}
	return Frame{
		StopName: stop.Name,
		Clock:    now.Format(clockTimeLayout),
		Rows:     rows,
		Rendered: now,
	}
}

// progressFill maps a distance in km onto a bar fill ratio. The bar empties
// linearly out to progressScaleKM and the result is clamped to [0,1].
func progressFill(km float64) float64 {
	if km < 0 {
		km = 0
	}
	if km > progressScaleKM {
		km = progressScaleKM
	}
	return 1.0 - km/progressScaleKM
}
