package tickerapp

import (
	"fmt"
	"io"
	"log" //nolint:depguard // Don't feel like using slog
	"math"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/mfeld/skysweep/internal"
)

const (
	// appIconPath is the file path to the icon png for this application.
	appIconPath = "./assets/icon.png"

	// alertCooldown suppresses repeat notifications for an aircraft that
	// stays inbound across many cycles.
	alertCooldown = 10 * time.Minute
)

type Notify struct {
	Stdout  log.Logger
	alerted map[string]time.Time
}

func NewNotify(appName string, consoleOut *io.Writer) *Notify {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.
	return &Notify{
		Stdout:  *log.New(*consoleOut, "", 0),
		alerted: make(map[string]time.Time),
	}
}

// PrintCycle prints a one-line cycle summary followed by one line per
// tracked contact, nearest first not guaranteed (table order).
func (notify *Notify) PrintCycle(radar *internal.Radar) {
	if !radar.DataAvailable() {
		notify.Stdout.Println("--- no data this cycle ---")

		return
	}

	stats := radar.Stats()
	notify.Stdout.Printf("--- tracked %d, inbound %d, range %.0f km ---",
		stats.Tracked, stats.Inbound, radar.Settings().RangeKm())

	table := radar.Table()
	for i := range internal.MaxContacts {
		contact := table.At(i)
		if !contact.Valid {
			continue
		}
		notify.Stdout.Println(contactToString(contact))
	}
}

// EmitInboundAlerts raises a desktop notification for every contact that is
// inbound this cycle and has not been alerted recently.
func (notify *Notify) EmitInboundAlerts(radar *internal.Radar, now time.Time) {
	table := radar.Table()
	for i := range internal.MaxContacts {
		contact := table.At(i)
		if !contact.Valid || contact.Stale || !contact.Inbound {
			continue
		}

		key := alertKey(contact)
		if last, seen := notify.alerted[key]; seen && now.Sub(last) < alertCooldown {
			continue
		}
		notify.alerted[key] = now

		notify.Stdout.Printf("inbound alert: %s\n", contactToString(contact))
		notifyInbound(contact)
	}
}

func alertKey(contact *internal.Contact) string {
	if contact.Flight != "" {
		return contact.Flight
	}
	if contact.Squawk != "" {
		return "sq:" + contact.Squawk
	}

	// Anonymous contact: bucket by rough position so re-alerts stay rare.
	return fmt.Sprintf("pos:%.0f/%.0f", contact.DistKm, contact.BearingDeg)
}

func notifyInbound(contact *internal.Contact) {
	flight := contact.Flight
	if flight == "" {
		flight = "unknown aircraft"
	}

	msgBody := fmt.Sprintf("%s at %.1f km, bearing %03.0f", flight, contact.DistKm, contact.BearingDeg)
	if minutes, ok := internal.PanelEta(contact.EtaMin); ok && minutes > 0 {
		msgBody += fmt.Sprintf(", closest approach in %.0f min", minutes)
	}

	if err := beeep.Notify("Inbound Aircraft", msgBody, appIconPath); err != nil {
		log.Printf("notification failed: %v", err)
	}
}

// contactToString generates a one-liner consisting of the most relevant
// information about the given contact.
func contactToString(contact *internal.Contact) string {
	flight := contact.Flight
	if flight == "" {
		flight = "unknown "
	}

	marker := " "
	switch {
	case contact.Stale:
		marker = "*"
	case contact.Inbound:
		marker = "!"
	}

	return fmt.Sprintf("%sFNO %-8s DST %5.1f km BRG %03.0f ALT %s SPD %s ETA %s",
		marker,
		flight,
		contact.DistKm,
		contact.BearingDeg,
		altitudeToString(contact.AltitudeFt),
		speedToString(contact.GroundSpeed),
		etaToString(contact.EtaMin))
}

func altitudeToString(altFt int) string {
	switch altFt {
	case internal.AltitudeUnknown:
		return "  n/a"
	case internal.AltitudeGround:
		return "  gnd"
	default:
		return fmt.Sprintf("%5d", altFt)
	}
}

func speedToString(speedKt float64) string {
	if math.IsNaN(speedKt) {
		return "n/a"
	}

	return fmt.Sprintf("%3.0f", speedKt)
}

func etaToString(etaMin float64) string {
	minutes, ok := internal.PanelEta(etaMin)
	if !ok {
		return "   -"
	}

	return fmt.Sprintf("%4.1f", minutes)
}
