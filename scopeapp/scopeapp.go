// Package scopeapp launches the interactive radar scope TUI: a rotating
// sweep over the contact table, a detail panel, and touch-style mouse
// controls for range, alert radius and rotation.
// Layout idea:
// +---------------------------------------------+
// |        .  N  .            LINK    LIVE      |
// |    /   '  |  '   \        RANGE   20 km     |
// |   | LBA ' | '  ↘  |       TRACKED 7         |
// | W +.:.:.'[+]':.:.:+ E     ...               |
// |   |    '  |  '    |       CONTACT TRACK     |
// |    \   '  |  '   /        FLIGHT  BAW123    |
// |        .  S  .            ...               |
// |  [ RANGE  20 KM ]  [ ALERT   5 KM ]         |
// +---------------------------------------------+
// .
package scopeapp

import (
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfeld/skysweep/internal"
)

const logFileName = "skysweep.log"

// Theme bundles the adaptive colors of the scope.
type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	PhosphorFaint  lipgloss.AdaptiveColor
	PhosphorDim    lipgloss.AdaptiveColor
	PhosphorMid    lipgloss.AdaptiveColor
	PhosphorBright lipgloss.AdaptiveColor
	SweepHead      lipgloss.AdaptiveColor
	Alert          lipgloss.AdaptiveColor
	StaleGrey      lipgloss.AdaptiveColor
	ZoneBlue       lipgloss.AdaptiveColor
}

func defaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
		Secondary: lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"},
		Highlight: lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#8b2def"},
		Border:    lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"},

		PhosphorFaint:  lipgloss.AdaptiveColor{Light: "#b9d4b9", Dark: "#1e3d1e"},
		PhosphorDim:    lipgloss.AdaptiveColor{Light: "#8fbc8f", Dark: "#2f6f2f"},
		PhosphorMid:    lipgloss.AdaptiveColor{Light: "#4f9f4f", Dark: "#3fae3f"},
		PhosphorBright: lipgloss.AdaptiveColor{Light: "#207020", Dark: "#62ff62"},
		SweepHead:      lipgloss.AdaptiveColor{Light: "#104f10", Dark: "#b4ffb4"},
		Alert:          lipgloss.AdaptiveColor{Light: "#c02020", Dark: "#ff5050"},
		StaleGrey:      lipgloss.AdaptiveColor{Light: "#9f9f9f", Dark: "#5f7f5f"},
		ZoneBlue:       lipgloss.AdaptiveColor{Light: "#2f5f9f", Dark: "#3f8fbf"},
	}
}

// palette maps the canvas style indices onto renderable lipgloss styles.
func (t Theme) palette() [styleCount]lipgloss.Style {
	var palette [styleCount]lipgloss.Style
	palette[styleBlank] = lipgloss.NewStyle()
	palette[styleFaint] = lipgloss.NewStyle().Foreground(t.PhosphorFaint)
	palette[styleDim] = lipgloss.NewStyle().Foreground(t.PhosphorDim)
	palette[styleMid] = lipgloss.NewStyle().Foreground(t.PhosphorMid)
	palette[styleBright] = lipgloss.NewStyle().Foreground(t.PhosphorBright)
	palette[styleSweep] = lipgloss.NewStyle().Foreground(t.SweepHead)
	palette[styleAlert] = lipgloss.NewStyle().Foreground(t.Alert).Bold(true)
	palette[styleStale] = lipgloss.NewStyle().Foreground(t.StaleGrey)
	palette[styleZone] = lipgloss.NewStyle().Foreground(t.ZoneBlue)
	palette[styleLabel] = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	return palette
}

// Run launches the scope. Errors go to the log file because the alternate
// screen owns the terminal.
func Run(appName string, cfg internal.Config) {
	errOut := io.Writer(os.Stderr)
	logFile, fileErr := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if fileErr == nil {
		defer func() { _ = logFile.Close() }()
		errOut = logFile
	}

	logger := internal.NewLogger(internal.LogParams{
		ConsoleOut: io.Discard,
		ErrorOut:   errOut,
	})
	logger.Info("launching", "app", appName, "feed", cfg.FeedURL)

	radar := internal.NewRadar(cfg, internal.FileSettingsStore{Path: cfg.SettingsPath}, logger)
	radar.Start(time.Now())

	m := newModel(radar, logger)

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
