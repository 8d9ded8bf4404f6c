package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// poller drives the poll-filter-rank-render cycle. The clock and the jitter
// source are injected so the loop is testable without real timing. No state
// survives between cycles; every tick works on a full fresh snapshot.
type poller struct {
	feed    BusFeedSource
	display Display
	stop    BusStop

	maxAge  time.Duration
	ignore  Cardinal
	maxRows int

	interval     time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	jitter       func() time.Duration
}

func newPoller(cfg *AppConfig, feed BusFeedSource, display Display) *poller {
	jitterRange := time.Duration(cfg.Poll.JitterSecs) * time.Second
	return &poller{
		feed:         feed,
		display:      display,
		stop:         cfg.stop(),
		maxAge:       cfg.maxStaleness(),
		ignore:       parseCardinal(cfg.IgnoreDirection),
		maxRows:      cfg.Display.Rows,
		interval:     time.Duration(cfg.Poll.IntervalSecs) * time.Second,
		fetchTimeout: cfg.feedTimeout(),
		now:          time.Now,
		jitter: func() time.Duration {
			if jitterRange == 0 {
				return 0
			}
			// uniform in [-jitterRange, +jitterRange], desynchronizes the
			// loop from upstream rate-limit windows
			return time.Duration(rand.Int63n(int64(2*jitterRange))) - jitterRange
		},
	}
}

// run executes cycles until the context is cancelled. Cancellation is only
// observed at the sleep boundary; a cycle in flight completes first. The
// display is cleared on the way out.
func (p *poller) run(ctx context.Context) {
	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := p.display.Clear(); err != nil {
				log.Warn().Err(err).Msg("Display clear failed on shutdown")
			}
			return
		case <-t.C:
			p.tick(ctx)
			t.Reset(p.interval + p.jitter())
		}
	}
}

// tick runs one complete cycle: fetch, rank, render.
func (p *poller) tick(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	buses, err := p.feed.Fetch(cctx)
	if err != nil {
		log.Error().Err(err).Msg("Feed fetch failed")
		return
	}

	now := p.now()
	ranked := rank(buses, p.stop, now, p.maxAge, p.ignore)
	frame := buildFrame(ranked, p.stop, now, p.maxRows)

	if err := p.display.Render(frame); err != nil {
		log.Error().Err(err).Msg("Display render failed")
	}

	log.Info().
		Int("fetched", len(buses)).
		Int("approaching", len(ranked)).
		Int("displayed", len(frame.Rows)).
		Msg("Cycle complete")
}
