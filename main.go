// Package main provides the radar scope application
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mfeld/skysweep/internal"
	"github.com/mfeld/skysweep/scopeapp"
	"github.com/mfeld/skysweep/tickerapp"
)

const (
	// thisAppName is the name of this application as shown on notifications.
	thisAppName = "skysweep"

	latLonArgCount = 2
)

func main() {
	var argIsUseTicker bool
	var argConfigPath string
	var argFeedURL string
	var argLatLon []float64

	setupCommandLineFlags(&argIsUseTicker, &argConfigPath, &argFeedURL, &argLatLon)

	// Parse all arguments provided to the program on launch.
	pflag.Parse()

	cfg, cfgErr := internal.LoadConfig(argConfigPath)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", thisAppName, cfgErr)
		os.Exit(1)
	}

	// Command line flags override the configuration file.
	if argFeedURL != "" {
		cfg.FeedURL = argFeedURL
	}
	if len(argLatLon) == latLonArgCount && (argLatLon[0] != 0 || argLatLon[1] != 0) {
		cfg.ObserverLat = argLatLon[0]
		cfg.ObserverLon = argLatLon[1]
	}

	if argIsUseTicker {
		tickerapp.Run(thisAppName, cfg)
	} else {
		scopeapp.Run(thisAppName, cfg)
	}
}

func setupCommandLineFlags(
	argIsUseTicker *bool,
	argConfigPath *string,
	argFeedURL *string,
	argLatLon *[]float64,
) {
	// Whether to launch the ticker or the scope app.
	pflag.BoolVarP(
		argIsUseTicker,
		"ticker",
		"t",
		false,
		"print contact updates on the command line without the scope TUI")
	pflag.Lookup("ticker").NoOptDefVal = "true"

	// Optional YAML configuration file.
	pflag.StringVarP(
		argConfigPath,
		"config",
		"c",
		"",
		"path to the YAML configuration file")

	// Feed URL override, for pointing at a non-default dump1090 instance.
	pflag.StringVarP(
		argFeedURL,
		"url",
		"u",
		"",
		"aircraft.json feed URL (overrides the config file)")

	// Observer position override, provided as lat,lon coordinates.
	pflag.Float64SliceVarP(
		argLatLon,
		"latlon",
		"l",
		[]float64{0, 0},
		"observer position as lat,lon (overrides the config file)")
}
