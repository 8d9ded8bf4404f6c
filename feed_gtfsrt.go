package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// GtfsRtFeedSource reads a GTFS-RT vehicle positions feed and maps it onto
// the same Bus model the SIRI source produces, for deployments whose
// operator publishes GTFS-RT instead of SIRI-VM. Only entities matching a
// configured line ref are kept; an empty route list keeps everything.
type GtfsRtFeedSource struct {
	url        string
	lineRefs   map[string]struct{}
	httpClient *http.Client
}

func NewGtfsRtFeedSource(url string, routes []RouteConfig, timeout time.Duration) *GtfsRtFeedSource {
	lineRefs := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		lineRefs[r.LineRef] = struct{}{}
	}
	return &GtfsRtFeedSource{
		url:        url,
		lineRefs:   lineRefs,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *GtfsRtFeedSource) Fetch(ctx context.Context) ([]Bus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gtfs-rt http status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(body, &feed); err != nil {
		return nil, err
	}

	buses := make([]Bus, 0, len(feed.Entity))
	for _, ent := range feed.Entity {
		if ent == nil || ent.Vehicle == nil {
			continue
		}
		vp := ent.Vehicle

		bus := Bus{
			LineRef:        unknownRef,
			OperatorRef:    unknownRef,
			OriginRef:      unknownRef,
			DestinationRef: unknownRef,
			VehicleRef:     unknownRef,
		}
		if vp.Vehicle != nil && vp.Vehicle.Id != nil && *vp.Vehicle.Id != "" {
			bus.VehicleRef = *vp.Vehicle.Id
		}
		if vp.Trip != nil && vp.Trip.RouteId != nil && *vp.Trip.RouteId != "" {
			bus.LineRef = *vp.Trip.RouteId
		}
		if len(s.lineRefs) > 0 {
			if _, ok := s.lineRefs[bus.LineRef]; !ok {
				continue
			}
		}
		if vp.Timestamp != nil && *vp.Timestamp > 0 {
			bus.RecordedAt = time.Unix(int64(*vp.Timestamp), 0).UTC().Format(time.RFC3339)
		}
		if vp.Position != nil && vp.Position.Latitude != nil && vp.Position.Longitude != nil {
			bus.Location = &Location{
				Latitude:  float64(*vp.Position.Latitude),
				Longitude: float64(*vp.Position.Longitude),
			}
		}
		buses = append(buses, bus)
	}
	return buses, nil
}
