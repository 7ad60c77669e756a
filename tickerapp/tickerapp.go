// Package tickerapp launches the ticker application which writes out all
// contact updates to stdout and can be piped into other programs and
// processed further.
// This is in contrast to the scope app, which works more like a radar
// console. There is no sweep in ticker mode; every fetch cycle is reported
// as it lands, and newly inbound aircraft raise a desktop notification.
package tickerapp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfeld/skysweep/internal"
)

func Run(appName string, cfg internal.Config) {
	fmt.Printf("%s watching %s from Lat: %.3f, Lon: %.3f\n",
		appName, cfg.FeedURL, cfg.ObserverLat, cfg.ObserverLon)

	stdout := io.Writer(os.Stdout)
	stderr := io.Writer(os.Stderr)

	logger := internal.NewLogger(internal.LogParams{
		ConsoleOut: stdout,
		ErrorOut:   stderr,
	})

	notify := NewNotify(appName, &stdout)

	radar := internal.NewRadar(cfg, internal.FileSettingsStore{Path: cfg.SettingsPath}, logger)
	radar.Start(time.Now())

	// Create a fetch ticker that fires on the fixed feed period.
	fetchTicker := time.NewTicker(cfg.FetchInterval)
	defer fetchTicker.Stop()

	// Use a channel to gracefully stop the program if needed.
	done := make(chan bool)

	// Start a goroutine to perform the requests. The radar state is only
	// ever touched from this goroutine, preserving the single-loop rule.
	go func() {
		runCycle(radar, notify, cfg, logger)
		for {
			select {
			case <-fetchTicker.C:
				runCycle(radar, notify, cfg, logger)
			case <-done:
				slog.Info("Stopping feed request routine.")

				return
			}
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	slog.Info("Shutdown signal received, stopping...")
	close(done)
}

func runCycle(radar *internal.Radar, notify *Notify, cfg internal.Config, logger *slog.Logger) {
	now := time.Now()

	body, err := internal.FetchFeed(cfg.FeedURL)
	if err != nil {
		logger.Error("tickerapp: ", slog.Any("error", err))
		radar.ApplyFeedError(err, now)
		notify.PrintCycle(radar)

		return
	}

	radar.ApplyFeed(body, now)
	notify.PrintCycle(radar)
	notify.EmitInboundAlerts(radar, now)
}
