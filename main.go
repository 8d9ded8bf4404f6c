package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("BUSDISPLAY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	if os.Getenv("BUSDISPLAY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "bus-stop-display",
		Description: "Tracks live buses approaching a stop and renders the nearest arrivals",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			runCommand(),
			onceCommand(),
			parseCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the continuous poll loop and serve the display simulator",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			feed, err := buildFeed(cfg)
			if err != nil {
				return err
			}

			web := NewWebDisplay()
			poll := newPoller(cfg, feed, multiDisplay{ConsoleDisplay{}, web})

			mux := http.NewServeMux()
			registerRoutes(mux, web)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Display.HTTPPort),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				log.Info().Msgf("Display simulator on http://localhost:%d/", cfg.Display.HTTPPort)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()

			pctx, pcancel := context.WithCancel(c.Context)
			pollerDone := make(chan struct{})
			go func() {
				poll.run(pctx)
				close(pollerDone)
			}()

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			<-sigs
			log.Info().Msg("Shutdown initiated")

			pcancel()
			<-pollerDone

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("HTTP server shutdown error")
			}
			return nil
		},
	}
}

func onceCommand() *cli.Command {
	return &cli.Command{
		Name:  "once",
		Usage: "Fetch and rank once, report to the console, then exit",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			feed, err := buildFeed(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(c.Context, cfg.feedTimeout())
			defer cancel()
			buses, err := feed.Fetch(ctx)
			if err != nil {
				return err
			}
			reportBuses(buses, cfg)
			return nil
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Rank vehicles from a saved SIRI-VM XML file instead of the live feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "path to a SIRI-VM XML document"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			f, err := os.Open(c.String("file"))
			if err != nil {
				return err
			}
			defer f.Close()
			buses, err := parseSiriVM(f)
			if err != nil {
				return err
			}
			reportBuses(buses, cfg)
			return nil
		},
	}
}

func buildFeed(cfg *AppConfig) (BusFeedSource, error) {
	switch cfg.Feed.Kind {
	case "gtfsrt":
		if cfg.Feed.GTFSRTURL == "" {
			return nil, errors.New("feed.gtfsrtURL is required when feed.kind is gtfsrt")
		}
		return NewGtfsRtFeedSource(cfg.Feed.GTFSRTURL, cfg.Routes, cfg.feedTimeout()), nil
	case "bods":
		if cfg.Feed.APIKey == "" {
			return nil, errors.New("feed.apiKey is required when feed.kind is bods")
		}
		return NewBODSFeedSource(cfg.Feed.BaseURL, cfg.Feed.APIKey, cfg.Routes, cfg.feedTimeout()), nil
	default:
		return nil, fmt.Errorf("unknown feed kind %q", cfg.Feed.Kind)
	}
}
