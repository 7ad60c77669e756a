package scopeapp

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfeld/skysweep/internal"
)

const (
	panelValueNone = "---"
	panelLabelLen  = 9
)

// panelRow is one label/value line on the detail panel.
type panelRow struct {
	label string
	value string
}

// Panel renders the tabular detail view next to the radar face. Rows are
// re-styled only when their text changed since the previous render; the
// original device did the same to keep display bus traffic down, here it
// keeps the per-frame allocation churn down.
type Panel struct {
	rows     []panelRow
	rendered []string
	dirty    bool
}

func NewPanel() *Panel {
	return &Panel{dirty: true}
}

// MarkDirty forces a rebuild on the next Update.
func (p *Panel) MarkDirty() {
	p.dirty = true
}

// Dirty reports whether the next Update will repaint anything.
func (p *Panel) Dirty() bool {
	return p.dirty
}

// Update adopts a fresh row list, re-rendering only rows whose label or
// value differs from what is already on screen. Without a dirty mark the
// cached render is kept untouched.
func (p *Panel) Update(rows []panelRow, labelStyle, valueStyle lipgloss.Style) {
	if !p.dirty {
		return
	}
	p.dirty = false

	if len(p.rendered) != len(rows) {
		p.rendered = make([]string, len(rows))
		p.rows = make([]panelRow, len(rows))
		for i := range p.rows {
			p.rows[i] = panelRow{label: "\x00"} // never equal, forces render
		}
	}

	for i, row := range rows {
		if row == p.rows[i] {
			continue
		}
		p.rows[i] = row
		p.rendered[i] = labelStyle.Render(padLabel(row.label)) + valueStyle.Render(row.value)
	}
}

// View joins the cached row renders.
func (p *Panel) View() string {
	return strings.Join(p.rendered, "\n")
}

func padLabel(label string) string {
	if label == "" {
		return strings.Repeat(" ", panelLabelLen)
	}
	for len(label) < panelLabelLen-1 {
		label += " "
	}

	return label + " "
}

// buildPanelRows assembles the current detail rows: link status, settings,
// counters, then the selected contact (or the closest aircraft when nothing
// is selected).
func buildPanelRows(radar *internal.Radar, now time.Time) []panelRow {
	settings := radar.Settings()

	status := "NO DATA"
	if radar.DataAvailable() {
		status = "LIVE"
	}

	rows := []panelRow{
		{label: "LINK", value: status},
		{label: "RANGE", value: fmt.Sprintf("%.0f km", settings.RangeKm())},
		{label: "ALERT", value: fmt.Sprintf("%.0f km", settings.AlertKm())},
		{label: "TRACKED", value: fmt.Sprintf("%d", radar.Stats().Tracked)},
		{label: "INBOUND", value: fmt.Sprintf("%d", radar.Stats().Inbound)},
		{label: "", value: ""},
	}

	contact, source := panelContact(radar)
	if contact == nil {
		rows = append(rows, panelRow{label: "CONTACT", value: panelValueNone})

		return rows
	}

	rows = append(rows, contactRows(contact, source)...)

	return rows
}

// panelContact picks what the lower panel half shows: the active selection
// if there is one, otherwise the closest aircraft of the latest cycle.
func panelContact(radar *internal.Radar) (*internal.Contact, string) {
	if selected := radar.Table().Selected(); selected != nil {
		return selected, "TRACK"
	}

	closest := radar.Closest()
	if closest.Valid {
		return &closest, "NEAREST"
	}

	return nil, ""
}

func contactRows(contact *internal.Contact, source string) []panelRow {
	flight := contact.Flight
	if flight == "" {
		flight = panelValueNone
	}
	if contact.Stale {
		source += " *"
	}

	rows := []panelRow{
		{label: "CONTACT", value: source},
		{label: "FLIGHT", value: flight},
		{label: "SQUAWK", value: orNone(contact.Squawk)},
		{label: "DIST", value: fmt.Sprintf("%.1f km", contact.DistKm)},
		{label: "BRG", value: fmt.Sprintf("%03.0f", contact.BearingDeg)},
		{label: "ALT", value: formatAltitude(contact.AltitudeFt)},
		{label: "SPD", value: formatKnots(contact.GroundSpeed)},
		{label: "TRK", value: formatTrack(contact.Track)},
		{label: "ETA", value: formatEta(contact.EtaMin, contact.Inbound)},
	}

	return rows
}

func orNone(value string) string {
	if value == "" {
		return panelValueNone
	}

	return value
}

func formatAltitude(altFt int) string {
	switch altFt {
	case internal.AltitudeUnknown:
		return panelValueNone
	case internal.AltitudeGround:
		return "ground"
	default:
		return fmt.Sprintf("%d ft", altFt)
	}
}

func formatKnots(speedKt float64) string {
	if math.IsNaN(speedKt) {
		return panelValueNone
	}

	return fmt.Sprintf("%.0f kt", speedKt)
}

func formatTrack(trackDeg float64) string {
	if math.IsNaN(trackDeg) {
		return panelValueNone
	}

	return fmt.Sprintf("%03.0f", trackDeg)
}

func formatEta(etaMin float64, inbound bool) string {
	minutes, ok := internal.PanelEta(etaMin)
	if !ok {
		return panelValueNone
	}
	if inbound && minutes == 0 {
		return "NOW"
	}

	return fmt.Sprintf("%.1f min", minutes)
}
