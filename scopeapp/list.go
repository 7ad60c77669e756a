package scopeapp

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/mfeld/skysweep/internal"
)

// newContactListTable builds the tabular contact overview shown on the
// second page. It reads raw kinematics, not the sweep-revealed snapshot: the
// list is a data view, only the face plays the radar illusion.
func newContactListTable(tableStyle table.Styles) table.Model {
	return table.New(
		table.WithColumns(
			[]table.Column{
				{Title: "FNO", Width: 8},
				{Title: "SQK", Width: 5},
				{Title: "DST", Width: 8},
				{Title: "BRG", Width: 4},
				{Title: "ALT", Width: 9},
				{Title: "SPD", Width: 7},
				{Title: "TRK", Width: 4},
				{Title: "IN", Width: 3},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(internal.MaxContacts/2),
		table.WithStyles(tableStyle),
	)
}

// contactListRows snapshots the table into rows sorted by distance.
func contactListRows(radar *internal.Radar) []table.Row {
	contacts := make([]internal.Contact, 0, internal.MaxContacts)
	for i := range internal.MaxContacts {
		if contact := radar.Table().At(i); contact.Valid {
			contacts = append(contacts, *contact)
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].DistKm < contacts[j].DistKm
	})

	rows := make([]table.Row, 0, len(contacts))
	for i := range contacts {
		contact := &contacts[i]

		inbound := ""
		if contact.Inbound {
			inbound = "!"
			if minutes, ok := internal.PanelEta(contact.EtaMin); ok && minutes > 0 {
				inbound = fmt.Sprintf("%.0fm", minutes)
			}
		}
		if contact.Stale {
			inbound = "*"
		}

		rows = append(rows, table.Row{
			orNone(contact.Flight),
			orNone(contact.Squawk),
			fmt.Sprintf("%6.1f", contact.DistKm),
			fmt.Sprintf("%03.0f", contact.BearingDeg),
			formatAltitude(contact.AltitudeFt),
			formatKnots(contact.GroundSpeed),
			formatTrack(contact.Track),
			inbound,
		})
	}

	return rows
}

// listAge renders how stale the displayed cycle is.
func listAge(lastUpdate time.Time, now time.Time) string {
	if lastUpdate.IsZero() {
		return "no data yet"
	}

	seconds := now.Sub(lastUpdate).Seconds()
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("updated %.0f s ago", seconds)
}
