package internal

import (
	"math"
	"strings"
	"time"
)

const (
	// Correlation gates for matching a fresh report against the previous
	// cycle when the flight identifier is missing or changed.
	correlateDistKm    = 1.0
	correlateBrgDeg    = 12.0
	headOnLimitDeg     = 90.0
	knotsToKmPerMinute = 1.852 / 60.0
)

// CycleStats carries the per-cycle counters shown on the detail panel.
type CycleStats struct {
	Tracked int // contacts in the table after reconciliation
	Inbound int // of those, how many are classified inbound
}

// BuildCycle rebuilds the contact table from a fresh report list.
//
// The previous table is never mutated; the caller swaps the returned table in
// once it is complete, so the render layer only ever observes a consistent
// snapshot. Continuity rules:
//
//   - a report that correlates with a previous contact inside the fade window
//     inherits that contact's display snapshot and reveal stamp, so the blip
//     does not jump on refresh, only on the next sweep pass;
//   - previous contacts not matched by any report but still inside the fade
//     window are carried forward as stale, frozen at their last revealed
//     position, so they fade out instead of vanishing;
//   - the active selection follows its contact through either path.
//
// The second return value is the closest in-range aircraft of this cycle
// (Valid=false when the sky is empty), used as the detail panel default.
func BuildCycle(
	reports []Report,
	prev *Table,
	observer Coordinates,
	rangeKm, alertKm float64,
	now time.Time,
	fadeWindow time.Duration,
) (*Table, Contact, CycleStats) {
	next := NewTable()

	var consumed [MaxContacts]bool
	var closest Contact
	var stats CycleStats

	for i := range reports {
		report := &reports[i]

		distKm := Distance(observer, report.Position).Kilometers()
		if distKm > rangeKm {
			continue
		}
		bearingDeg := Bearing(observer, report.Position)

		inbound, etaMin := classifyInbound(distKm, bearingDeg, report.Track, report.GroundSpeed, alertKm)

		contact := Contact{
			Flight:      report.Flight,
			Squawk:      report.Squawk,
			DistKm:      distKm,
			BearingDeg:  bearingDeg,
			GroundSpeed: report.GroundSpeed,
			Track:       report.Track,
			AltitudeFt:  report.AltitudeFt,
			Inbound:     inbound,
			EtaMin:      etaMin,
		}

		// The closest-aircraft cache considers every in-range report,
		// including ones dropped by the capacity bound below.
		if !closest.Valid || distKm < closest.DistKm {
			closest = contact
			closest.Valid = true
		}

		prevIdx := correlate(prev, &consumed, &contact)
		if prevIdx != NoSelection {
			consumed[prevIdx] = true
			prevContact := prev.At(prevIdx)
			if prevContact.Revealed() && now.Sub(prevContact.LastRevealed) <= fadeWindow {
				contact.LastRevealed = prevContact.LastRevealed
				contact.DispDistKm = prevContact.DispDistKm
				contact.DispBearingDeg = prevContact.DispBearingDeg
				contact.DispTrackDeg = prevContact.DispTrackDeg
			}
		}

		slot, ok := next.Insert(contact)
		if !ok {
			continue // table full, report dropped in feed order
		}

		stats.Tracked++
		if inbound {
			stats.Inbound++
		}
		if prevIdx != NoSelection && prev.SelectedIndex() == prevIdx {
			next.Select(slot)
		}
	}

	carryStaleContacts(next, prev, &consumed, now, fadeWindow)

	return next, closest, stats
}

// correlate finds the previous-cycle contact that matches the new report:
// first by case-insensitive exact match of a non-empty flight identifier,
// then by proximity. Each previous contact may be consumed at most once and
// the first match wins. Returns NoSelection when nothing matches.
func correlate(prev *Table, consumed *[MaxContacts]bool, contact *Contact) int {
	if prev == nil {
		return NoSelection
	}

	if contact.Flight != "" {
		for i := range MaxContacts {
			prevContact := prev.At(i)
			if !prevContact.Valid || consumed[i] {
				continue
			}
			if strings.EqualFold(prevContact.Flight, contact.Flight) {
				return i
			}
		}
	}

	for i := range MaxContacts {
		prevContact := prev.At(i)
		if !prevContact.Valid || consumed[i] {
			continue
		}
		if math.Abs(prevContact.DistKm-contact.DistKm) <= correlateDistKm &&
			AngularDiff(prevContact.BearingDeg, contact.BearingDeg) <= correlateBrgDeg {
			return i
		}
	}

	return NoSelection
}

// carryStaleContacts re-inserts previous contacts that no report consumed but
// whose fade window has not elapsed. They keep their frozen display snapshot
// and are marked stale so the sweep no longer updates them.
func carryStaleContacts(
	next, prev *Table,
	consumed *[MaxContacts]bool,
	now time.Time,
	fadeWindow time.Duration,
) {
	if prev == nil {
		return
	}

	for i := range MaxContacts {
		prevContact := prev.At(i)
		if !prevContact.Valid || consumed[i] {
			continue
		}
		if !prevContact.Revealed() || now.Sub(prevContact.LastRevealed) > fadeWindow {
			continue
		}

		stale := *prevContact
		stale.Stale = true

		slot, ok := next.Insert(stale)
		if !ok {
			continue
		}
		if prev.SelectedIndex() == i {
			next.Select(slot)
		}
	}
}

// classifyInbound decides whether an aircraft is a threat to the alert
// radius. Inside the radius it is inbound with zero minutes to go. Outside,
// its track and speed must project a closest-approach cross-track distance
// within the radius while still closing; the along-track distance over the
// ground speed gives the minutes to closest approach. NaN speed or track
// means the geometry cannot be computed and the aircraft is not inbound.
func classifyInbound(distKm, bearingDeg, trackDeg, speedKt, alertKm float64) (bool, float64) {
	if distKm <= alertKm {
		return true, 0
	}

	if math.IsNaN(trackDeg) || math.IsNaN(speedKt) || speedKt <= 0 {
		return false, math.NaN()
	}

	// Bearing from the aircraft back to the observer is the reciprocal of
	// the observer's bearing to the aircraft.
	toObserverDeg := NormalizeBearing(bearingDeg + halfCircleDeg)

	offDeg := AngularDiff(trackDeg, toObserverDeg)
	if offDeg >= headOnLimitDeg {
		return false, math.NaN()
	}

	offRad := degreesToRadian(offDeg)
	crossKm := distKm * math.Sin(offRad)
	alongKm := distKm * math.Cos(offRad)

	if crossKm <= alertKm && alongKm >= 0 {
		return true, alongKm / (speedKt * knotsToKmPerMinute)
	}

	return false, math.NaN()
}
