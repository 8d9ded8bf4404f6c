package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultBODSBaseURL = "https://data.bus-data.dft.gov.uk/api/v1/datafeed/"

// RouteConfig identifies one monitored route on the upstream feed.
type RouteConfig struct {
	OperatorRef    string `yaml:"operatorRef" validate:"required"`
	LineRef        string `yaml:"lineRef" validate:"required"`
	OriginRef      string `yaml:"originRef"`
	DestinationRef string `yaml:"destinationRef"`
}

// StopConfig is the observation point the display is mounted at.
type StopConfig struct {
	Name      string  `yaml:"name"`
	StopRef   string  `yaml:"stopRef"`
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
}

// FeedConfig selects and parameterizes the upstream feed.
type FeedConfig struct {
	Kind        string `yaml:"kind" validate:"omitempty,oneof=bods gtfsrt"`
	BaseURL     string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey      string `yaml:"apiKey"`
	GTFSRTURL   string `yaml:"gtfsrtURL" validate:"omitempty,url"`
	TimeoutSecs int    `yaml:"timeoutSecs" validate:"gte=0"`
}

// PollConfig controls the fetch cadence. Jitter desynchronizes the loop from
// upstream rate-limit windows.
type PollConfig struct {
	IntervalSecs int `yaml:"intervalSecs" validate:"gte=0"`
	JitterSecs   int `yaml:"jitterSecs" validate:"gte=0"`
}

// DisplayConfig controls the presentation surface.
type DisplayConfig struct {
	Rows     int `yaml:"rows" validate:"gte=0"`
	HTTPPort int `yaml:"httpPort" validate:"gte=0"`
}

// AppConfig is the root configuration, read once at process start.
type AppConfig struct {
	Stop                StopConfig    `yaml:"stop" validate:"required"`
	Feed                FeedConfig    `yaml:"feed"`
	Routes              []RouteConfig `yaml:"routes" validate:"min=1,dive"`
	IgnoreDirection     string        `yaml:"ignoreDirection"`
	MaxStalenessMinutes int           `yaml:"maxStalenessMinutes" validate:"gte=0"`
	Poll                PollConfig    `yaml:"poll"`
	Display             DisplayConfig `yaml:"display"`
}

// loadConfig reads, validates, and defaults the YAML configuration.
func loadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Feed.Kind == "" {
		c.Feed.Kind = "bods"
	}
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = defaultBODSBaseURL
	}
	if c.Feed.TimeoutSecs == 0 {
		c.Feed.TimeoutSecs = 10
	}
	if c.MaxStalenessMinutes == 0 {
		c.MaxStalenessMinutes = 15
	}
	if c.Poll.IntervalSecs == 0 {
		c.Poll.IntervalSecs = 10
	}
	if c.Poll.JitterSecs == 0 {
		c.Poll.JitterSecs = 2
	}
	if c.Display.Rows == 0 {
		c.Display.Rows = 3
	}
	if c.Display.HTTPPort == 0 {
		c.Display.HTTPPort = 8080
	}
}

// stop builds the BusStop value used throughout the pipeline.
func (c *AppConfig) stop() BusStop {
	return BusStop{
		Name:    c.Stop.Name,
		StopRef: c.Stop.StopRef,
		Location: Location{
			Latitude:  c.Stop.Latitude,
			Longitude: c.Stop.Longitude,
		},
	}
}

func (c *AppConfig) maxStaleness() time.Duration {
	return time.Duration(c.MaxStalenessMinutes) * time.Minute
}

func (c *AppConfig) feedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSecs) * time.Second
}
