package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// BusFeedSource fetches the current vehicle snapshot for the configured
// routes. Implementations must be safe to call once per poll cycle.
type BusFeedSource interface {
	Fetch(ctx context.Context) ([]Bus, error)
}

// BODSFeedSource queries the UK Bus Open Data SIRI-VM datafeed, one request
// per monitored route, and merges the results.
type BODSFeedSource struct {
	baseURL    string
	apiKey     string
	routes     []RouteConfig
	httpClient *http.Client
}

func NewBODSFeedSource(baseURL, apiKey string, routes []RouteConfig, timeout time.Duration) *BODSFeedSource {
	return &BODSFeedSource{
		baseURL:    baseURL,
		apiKey:     apiKey,
		routes:     routes,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch fans out over the configured routes. A failed route is logged and
// skipped so one broken query does not blank the whole display.
func (s *BODSFeedSource) Fetch(ctx context.Context) ([]Bus, error) {
	var all []Bus
	for _, route := range s.routes {
		buses, err := s.fetchRoute(ctx, route)
		if err != nil {
			log.Warn().Err(err).
				Str("operator", route.OperatorRef).
				Str("line", route.LineRef).
				Msg("Route fetch failed")
			continue
		}
		all = append(all, buses...)
	}
	return all, nil
}

func (s *BODSFeedSource) fetchRoute(ctx context.Context, route RouteConfig) ([]Bus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("operatorRef", route.OperatorRef)
	q.Set("lineRef", route.LineRef)
	if route.OriginRef != "" {
		q.Set("originRef", route.OriginRef)
	}
	if route.DestinationRef != "" {
		q.Set("destinationRef", route.DestinationRef)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bods http status: %d", resp.StatusCode)
	}
	return parseSiriVM(resp.Body)
}
