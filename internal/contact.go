package internal

import (
	"time"
)

const (
	// MaxContacts bounds the contact table. Excess in-range aircraft in a
	// fetch cycle are dropped in feed order.
	MaxContacts = 40

	// NoSelection marks an empty active-selection slot reference.
	NoSelection = -1
)

// Contact is one tracked aircraft in the scope's working set.
//
// It carries two positions: the raw kinematics refreshed on every fetch
// cycle, and the display kinematics which are written only when the rotating
// sweep reveals the contact. Rendering reads display fields exclusively,
// which is what produces the classic radar illusion of blips that hold still
// until the beam passes them again.
type Contact struct {
	Flight string
	Squawk string

	// Raw kinematics, as of the most recent fetch.
	DistKm     float64
	BearingDeg float64

	// Display kinematics, written only by RevealOnSweep.
	DispDistKm     float64
	DispBearingDeg float64
	DispTrackDeg   float64

	GroundSpeed float64 // knots, NaN when unknown
	Track       float64 // degrees, NaN when unknown
	AltitudeFt  int     // feet, AltitudeUnknown when unknown, 0 = on ground
	Inbound     bool
	EtaMin      float64 // minutes to closest approach, NaN when not computable

	LastRevealed time.Time // zero = never revealed this life
	Stale        bool      // absent from the latest fetch, fading out
	Valid        bool
}

// Revealed reports whether the sweep has shown this contact at least once,
// i.e. whether its display fields hold anything drawable.
func (c *Contact) Revealed() bool {
	return !c.LastRevealed.IsZero()
}

// FadeFraction returns how far through the fade window the contact is,
// clamped to [0, 1]. 0 is freshly revealed, 1 is fully faded.
func (c *Contact) FadeFraction(now time.Time, fadeWindow time.Duration) float64 {
	if !c.Revealed() || fadeWindow <= 0 {
		return 1.0
	}

	fraction := float64(now.Sub(c.LastRevealed)) / float64(fadeWindow)
	if fraction < 0 {
		return 0.0
	}
	if fraction > 1 {
		return 1.0
	}

	return fraction
}

// Table is the fixed-capacity contact slab. Slots are reused across cycles;
// a slot with Valid=false is logically absent. The table also owns the
// active-selection slot reference shown on the detail panel.
//
// All mutation happens from the single UI event loop, so the table carries
// no locking.
type Table struct {
	slots    [MaxContacts]Contact
	selected int
}

func NewTable() *Table {
	table := &Table{}
	table.Reset()

	return table
}

// Reset invalidates every slot and clears the active selection.
func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = Contact{}
	}
	t.selected = NoSelection
}

// Insert places a contact into the first free slot and returns its index.
// Returns NoSelection, false when the table is at capacity.
func (t *Table) Insert(c Contact) (int, bool) {
	for i := range t.slots {
		if !t.slots[i].Valid {
			c.Valid = true
			t.slots[i] = c

			return i, true
		}
	}

	return NoSelection, false
}

// At returns the contact in the given slot. Callers must check Valid.
func (t *Table) At(i int) *Contact {
	return &t.slots[i]
}

// ValidCount returns the number of live contacts.
func (t *Table) ValidCount() int {
	count := 0
	for i := range t.slots {
		if t.slots[i].Valid {
			count++
		}
	}

	return count
}

// Select marks the given slot as the active selection.
func (t *Table) Select(i int) {
	if i >= 0 && i < MaxContacts && t.slots[i].Valid {
		t.selected = i
	}
}

// ClearSelection drops the active selection.
func (t *Table) ClearSelection() {
	t.selected = NoSelection
}

// SelectedIndex returns the active selection slot, or NoSelection.
func (t *Table) SelectedIndex() int {
	return t.selected
}

// Selected returns the actively selected contact, or nil when there is none.
func (t *Table) Selected() *Contact {
	if t.selected == NoSelection || !t.slots[t.selected].Valid {
		return nil
	}

	return &t.slots[t.selected]
}

// RevealOnSweep copies raw kinematics into the display snapshot for every
// live, non-stale contact whose raw bearing lies within beamDeg of the sweep
// angle, and stamps the reveal time. This is the only writer of display
// fields. Stale contacts keep their frozen snapshot and continue to fade.
//
// When no contact is selected, the first reveal claims the selection so the
// detail panel always follows the action on the face. Returns whether the
// detail panel content may have changed.
func (t *Table) RevealOnSweep(sweepDeg, beamDeg float64, now time.Time) bool {
	panelDirty := false
	for i := range t.slots {
		contact := &t.slots[i]
		if !contact.Valid || contact.Stale {
			continue
		}
		if AngularDiff(contact.BearingDeg, sweepDeg) > beamDeg {
			continue
		}

		contact.DispDistKm = contact.DistKm
		contact.DispBearingDeg = contact.BearingDeg
		contact.DispTrackDeg = contact.Track
		contact.LastRevealed = now

		if t.selected == i {
			panelDirty = true
		}
		if t.selected == NoSelection {
			t.selected = i
			panelDirty = true
		}
	}

	return panelDirty
}

// Expire invalidates every contact whose last reveal is older than the fade
// window. Contacts that have never been revealed are left alone until the
// sweep reaches them for the first time. Returns whether the active
// selection was dropped.
func (t *Table) Expire(now time.Time, fadeWindow time.Duration) bool {
	selectionDropped := false
	for i := range t.slots {
		contact := &t.slots[i]
		if !contact.Valid || !contact.Revealed() {
			continue
		}
		if now.Sub(contact.LastRevealed) <= fadeWindow {
			continue
		}

		t.slots[i] = Contact{}
		if t.selected == i {
			t.selected = NoSelection
			selectionDropped = true
		}
	}

	return selectionDropped
}
