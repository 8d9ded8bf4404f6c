package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
stop:
  name: My Bus Stop
  stopRef: 2400A013900A
  latitude: 51.389
  longitude: 0.547
feed:
  apiKey: secret
routes:
  - operatorRef: AKSS
    lineRef: "1"
`

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "bods", cfg.Feed.Kind)
	assert.Equal(t, defaultBODSBaseURL, cfg.Feed.BaseURL)
	assert.Equal(t, 10, cfg.Feed.TimeoutSecs)
	assert.Equal(t, 15, cfg.MaxStalenessMinutes)
	assert.Equal(t, 10, cfg.Poll.IntervalSecs)
	assert.Equal(t, 2, cfg.Poll.JitterSecs)
	assert.Equal(t, 3, cfg.Display.Rows)
	assert.Equal(t, 8080, cfg.Display.HTTPPort)

	assert.Equal(t, 15*time.Minute, cfg.maxStaleness())
	assert.Equal(t, 10*time.Second, cfg.feedTimeout())

	stop := cfg.stop()
	assert.Equal(t, "My Bus Stop", stop.Name)
	assert.Equal(t, "2400A013900A", stop.StopRef)
	assert.InDelta(t, 51.389, stop.Location.Latitude, 1e-9)
	assert.InDelta(t, 0.547, stop.Location.Longitude, 1e-9)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing file is an error", ""},
		{
			"no routes",
			`
stop: {latitude: 51.0, longitude: 0.5}
feed: {apiKey: secret}
routes: []
`,
		},
		{
			"latitude out of range",
			`
stop: {latitude: 123.0, longitude: 0.5}
feed: {apiKey: secret}
routes: [{operatorRef: AKSS, lineRef: "1"}]
`,
		},
		{
			"unknown feed kind",
			`
stop: {latitude: 51.0, longitude: 0.5}
feed: {kind: carrier-pigeon, apiKey: secret}
routes: [{operatorRef: AKSS, lineRef: "1"}]
`,
		},
		{
			"route without operator",
			`
stop: {latitude: 51.0, longitude: 0.5}
feed: {apiKey: secret}
routes: [{lineRef: "1"}]
`,
		},
		{"not yaml", `{{{`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tt.body)
			if tt.body == "" {
				path = filepath.Join(t.TempDir(), "missing.yml")
			}
			_, err := loadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFullExample(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig("config.example.yml")
	require.NoError(t, err)
	assert.Equal(t, "W", cfg.IgnoreDirection)
	require.Len(t, cfg.Routes, 1)
	assert.Equal(t, "AKSS", cfg.Routes[0].OperatorRef)
	assert.Equal(t, West, parseCardinal(cfg.IgnoreDirection))
}
