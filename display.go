package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Display consumes rendered frames. Clear is called once on shutdown so a
// physical panel is not left showing stale arrivals.
type Display interface {
	Render(frame Frame) error
	Clear() error
}

// ConsoleDisplay writes each frame as structured log lines. It doubles as
// the renderer for one-shot runs and as a debugging tap next to the web
// display.
type ConsoleDisplay struct{}

func (ConsoleDisplay) Render(frame Frame) error {
	if len(frame.Rows) == 0 {
		log.Info().Str("stop", frame.StopName).Msg("No buses to display")
		return nil
	}
	for _, row := range frame.Rows {
		log.Info().
			Int("position", row.Position).
			Str("line", row.LineRef).
			Str("vehicle", row.VehicleRef).
			Str("towards", row.DestinationName).
			Str("direction", string(row.Direction)).
			Str("distance", row.DistanceText).
			Str("state", string(row.State)).
			Msg("Tracked bus")
	}
	return nil
}

func (ConsoleDisplay) Clear() error { return nil }

// reportBuses runs the pipeline against a snapshot and logs every ranked
// bus in full detail. Used by the one-shot commands.
func reportBuses(buses []Bus, cfg *AppConfig) {
	stop := cfg.stop()
	ignore := parseCardinal(cfg.IgnoreDirection)

	ev := log.Info().
		Str("stop", stop.Name).
		Float64("lat", stop.Location.Latitude).
		Float64("lon", stop.Location.Longitude)
	if ignore != "" {
		ev = ev.Str("ignoreDirection", string(ignore))
	}
	ev.Msg("Observation point")

	ranked := rank(buses, stop, time.Now(), cfg.maxStaleness(), ignore)
	if len(ranked) == 0 {
		log.Info().Int("fetched", len(buses)).Msg("No buses found")
		return
	}

	for i, rb := range ranked {
		log.Info().
			Int("position", i+1).
			Str("line", rb.LineRef).
			Str("vehicle", rb.VehicleRef).
			Str("route", rb.OriginName+" to "+rb.DestinationName).
			Float64("lat", rb.Location.Latitude).
			Float64("lon", rb.Location.Longitude).
			Str("direction", string(rb.Direction)).
			Str("distance", fmt.Sprintf("%.0fm (%.2fkm)", rb.DistanceMeters, rb.DistanceMeters/1000)).
			Str("lastUpdated", rb.RecordedAt).
			Msg("Bus")
	}
}

// multiDisplay fans a frame out to several displays; render errors are
// logged per display rather than aborting the cycle.
type multiDisplay []Display

func (m multiDisplay) Render(frame Frame) error {
	for _, d := range m {
		if err := d.Render(frame); err != nil {
			log.Warn().Err(err).Msg("Display render failed")
		}
	}
	return nil
}

func (m multiDisplay) Clear() error {
	for _, d := range m {
		if err := d.Clear(); err != nil {
			log.Warn().Err(err).Msg("Display clear failed")
		}
	}
	return nil
}
