package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func vehicleEntity(id, routeID string, lat, lon float32, ts uint64) *gtfs.FeedEntity {
	return &gtfs.FeedEntity{
		Id: proto.String(id),
		Vehicle: &gtfs.VehiclePosition{
			Trip:    &gtfs.TripDescriptor{RouteId: proto.String(routeID)},
			Vehicle: &gtfs.VehicleDescriptor{Id: proto.String(id)},
			Position: &gtfs.Position{
				Latitude:  proto.Float32(lat),
				Longitude: proto.Float32(lon),
			},
			Timestamp: proto.Uint64(ts),
		},
	}
}

func serveFeedMessage(t *testing.T, feed *gtfs.FeedMessage) *httptest.Server {
	t.Helper()
	body, err := proto.Marshal(feed)
	require.NoError(t, err)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
}

func TestGtfsRtFeedSourceFetch(t *testing.T) {
	t.Parallel()

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			vehicleEntity("V1", "1", 51.4, 0.5, 1765000000),
			vehicleEntity("V2", "99", 51.5, 0.6, 1765000000),
			{
				Id: proto.String("no-position"),
				Vehicle: &gtfs.VehiclePosition{
					Trip:    &gtfs.TripDescriptor{RouteId: proto.String("1")},
					Vehicle: &gtfs.VehicleDescriptor{Id: proto.String("V3")},
				},
			},
		},
	}
	srv := serveFeedMessage(t, feed)
	defer srv.Close()

	routes := []RouteConfig{{OperatorRef: "AKSS", LineRef: "1"}}
	src := NewGtfsRtFeedSource(srv.URL, routes, 5*time.Second)

	buses, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, buses, 2, "route 99 filtered out, position-less V3 kept for the pipeline to drop")

	assert.Equal(t, "V1", buses[0].VehicleRef)
	assert.Equal(t, "1", buses[0].LineRef)
	require.NotNil(t, buses[0].Location)
	assert.InDelta(t, 51.4, buses[0].Location.Latitude, 1e-4)
	assert.InDelta(t, 0.5, buses[0].Location.Longitude, 1e-4)
	assert.Equal(t, time.Unix(1765000000, 0).UTC().Format(time.RFC3339), buses[0].RecordedAt)

	assert.Equal(t, "V3", buses[1].VehicleRef)
	assert.Nil(t, buses[1].Location)
	assert.Empty(t, buses[1].RecordedAt)
}

func TestGtfsRtFeedSourceNoRouteFilter(t *testing.T) {
	t.Parallel()

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			vehicleEntity("V1", "1", 51.4, 0.5, 1765000000),
			vehicleEntity("V2", "99", 51.5, 0.6, 1765000000),
		},
	}
	srv := serveFeedMessage(t, feed)
	defer srv.Close()

	src := NewGtfsRtFeedSource(srv.URL, nil, 5*time.Second)
	buses, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, buses, 2)
}
