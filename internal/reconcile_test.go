package internal

import (
	"fmt"
	"math"
	"testing"
	"time"
)

var testObserver = NewCoordinates(54.0, -1.0)

// reportAt builds a report at the given range and bearing from the observer
// using a flat-earth offset, which is accurate enough at scope ranges.
func reportAt(flight string, distKm, bearingDeg float64) Report {
	brgRad := degreesToRadian(bearingDeg)
	dLat := distKm * math.Cos(brgRad) / 111.2
	dLon := distKm * math.Sin(brgRad) / (111.2 * math.Cos(degreesToRadian(testObserver.Latitude)))

	return Report{
		Flight:      flight,
		Position:    NewCoordinates(testObserver.Latitude+dLat, testObserver.Longitude+dLon),
		GroundSpeed: math.NaN(),
		Track:       math.NaN(),
		AltitudeFt:  AltitudeUnknown,
	}
}

func TestBuildCycleRangeGate(t *testing.T) {
	reports := []Report{
		reportAt("NEAR1", 8, 45),
		reportAt("FAR99", 60, 45),
	}

	table, closest, stats := BuildCycle(reports, NewTable(), testObserver, 20, 5, testEpoch, testFadeWindow)

	if stats.Tracked != 1 {
		t.Fatalf("Tracked = %d, want 1 (out-of-range aircraft discarded)", stats.Tracked)
	}
	if table.ValidCount() != 1 {
		t.Fatalf("table holds %d contacts, want 1", table.ValidCount())
	}
	if closest.Flight != "NEAR1" {
		t.Errorf("closest = %q, want NEAR1", closest.Flight)
	}
}

func TestBuildCycleCapacityBound(t *testing.T) {
	reports := make([]Report, 0, MaxContacts+10)
	for i := range MaxContacts + 10 {
		reports = append(reports, reportAt(fmt.Sprintf("AC%03d", i), 5+float64(i)*0.2, float64(i*7%360)))
	}

	table, _, stats := BuildCycle(reports, NewTable(), testObserver, 100, 5, testEpoch, testFadeWindow)

	if table.ValidCount() != MaxContacts {
		t.Errorf("table holds %d contacts, want capacity %d", table.ValidCount(), MaxContacts)
	}
	if stats.Tracked != MaxContacts {
		t.Errorf("Tracked = %d, want %d", stats.Tracked, MaxContacts)
	}
}

func TestBuildCycleIdentityCorrelation(t *testing.T) {
	// Cycle 1: BAW123 at 10 km / 090. Reveal it so there is a display
	// snapshot to carry.
	first, _, _ := BuildCycle(
		[]Report{reportAt("BAW123", 10, 90)},
		NewTable(), testObserver, 50, 5, testEpoch, testFadeWindow)
	first.RevealOnSweep(90, 12, testEpoch)

	// Cycle 2: same flight, now at 8 km. Identity match must win even
	// though the aircraft moved beyond the proximity gate.
	second, _, _ := BuildCycle(
		[]Report{reportAt("baw123", 8, 90)},
		first, testObserver, 50, 5, testEpoch.Add(5*time.Second), testFadeWindow)

	if second.ValidCount() != 1 {
		t.Fatalf("table holds %d contacts, want 1 (correlated, not duplicated)", second.ValidCount())
	}

	contact := second.At(0)
	if contact.Stale {
		t.Error("re-matched contact must not be stale")
	}
	if !contact.LastRevealed.Equal(testEpoch) {
		t.Error("reveal stamp must carry over on identity match")
	}
	if math.Abs(contact.DispDistKm-10) > 0.1 {
		t.Errorf("display distance = %v, want carried-over 10 (no jump on refresh)", contact.DispDistKm)
	}
	if math.Abs(contact.DistKm-8) > 0.1 {
		t.Errorf("raw distance = %v, want refreshed 8", contact.DistKm)
	}
}

func TestBuildCycleProximityFallback(t *testing.T) {
	// Anonymous aircraft: no flight id, so only the proximity gate can
	// correlate it across cycles.
	first, _, _ := BuildCycle(
		[]Report{reportAt("", 10, 90)},
		NewTable(), testObserver, 50, 5, testEpoch, testFadeWindow)
	first.RevealOnSweep(90, 12, testEpoch)

	second, _, _ := BuildCycle(
		[]Report{reportAt("", 10.4, 92)},
		first, testObserver, 50, 5, testEpoch.Add(5*time.Second), testFadeWindow)

	if second.ValidCount() != 1 {
		t.Fatalf("table holds %d contacts, want 1", second.ValidCount())
	}
	if !second.At(0).LastRevealed.Equal(testEpoch) {
		t.Error("proximity match must carry the reveal stamp")
	}

	// Outside both gates: no correlation, the old contact is carried as
	// stale alongside the new one.
	third, _, _ := BuildCycle(
		[]Report{reportAt("", 15, 150)},
		first, testObserver, 50, 5, testEpoch.Add(5*time.Second), testFadeWindow)

	if third.ValidCount() != 2 {
		t.Errorf("table holds %d contacts, want new + stale", third.ValidCount())
	}
}

func TestBuildCycleIdempotence(t *testing.T) {
	reports := []Report{reportAt("BAW123", 10, 90), reportAt("EZY45", 20, 200)}

	first, _, _ := BuildCycle(reports, NewTable(), testObserver, 50, 5, testEpoch, testFadeWindow)
	first.RevealOnSweep(90, 12, testEpoch)

	// Same list again with no elapsed time and no sweep in between:
	// display fields must be bit-identical, raw fields likewise.
	second, _, _ := BuildCycle(reports, first, testObserver, 50, 5, testEpoch, testFadeWindow)

	for i := range MaxContacts {
		before, after := first.At(i), second.At(i)
		if before.Valid != after.Valid {
			t.Fatalf("slot %d validity changed across idempotent cycles", i)
		}
		if !before.Valid {
			continue
		}
		if before.DispDistKm != after.DispDistKm || before.DispBearingDeg != after.DispBearingDeg {
			t.Errorf("slot %d display fields jittered: %+v vs %+v", i, before, after)
		}
	}
}

func TestBuildCycleStaleLifecycle(t *testing.T) {
	// Cycle 1: aircraft present and revealed.
	first, _, _ := BuildCycle(
		[]Report{reportAt("BAW123", 10, 90)},
		NewTable(), testObserver, 50, 5, testEpoch, testFadeWindow)
	first.RevealOnSweep(90, 12, testEpoch)

	// Cycle 2: absent; within fade window it must survive as stale.
	second, _, _ := BuildCycle(
		nil, first, testObserver, 50, 5, testEpoch.Add(5*time.Second), testFadeWindow)

	if second.ValidCount() != 1 {
		t.Fatalf("absent aircraft inside fade window must be carried, table holds %d", second.ValidCount())
	}
	if !second.At(0).Stale {
		t.Error("carried contact must be flagged stale")
	}

	// Cycle 3: still absent and past the window: gone.
	third, _, _ := BuildCycle(
		nil, second, testObserver, 50, 5, testEpoch.Add(12*time.Second), testFadeWindow)

	if third.ValidCount() != 0 {
		t.Errorf("contact past the fade window must be dropped, table holds %d", third.ValidCount())
	}
}

func TestBuildCycleSelectionCarry(t *testing.T) {
	first, _, _ := BuildCycle(
		[]Report{reportAt("BAW123", 10, 90), reportAt("EZY45", 20, 200)},
		NewTable(), testObserver, 50, 5, testEpoch, testFadeWindow)
	first.RevealOnSweep(90, 12, testEpoch)
	if first.Selected() == nil || first.Selected().Flight != "BAW123" {
		t.Fatal("precondition: BAW123 selected by reveal")
	}

	// Reordered reports move the selected aircraft to another slot.
	second, _, _ := BuildCycle(
		[]Report{reportAt("EZY45", 19, 201), reportAt("BAW123", 9, 91)},
		first, testObserver, 50, 5, testEpoch.Add(5*time.Second), testFadeWindow)

	selected := second.Selected()
	if selected == nil || selected.Flight != "BAW123" {
		t.Errorf("selection must follow its contact across slots, got %+v", selected)
	}
}

func TestClassifyInbound(t *testing.T) {
	tests := []struct {
		name        string
		distKm      float64
		bearingDeg  float64
		trackDeg    float64
		speedKt     float64
		wantInbound bool
		wantEtaZero bool
	}{
		{
			name:   "inside alert radius",
			distKm: 3, bearingDeg: 90, trackDeg: 90, speedKt: 200,
			wantInbound: true, wantEtaZero: true,
		},
		{
			name:   "heading directly away",
			distKm: 10, bearingDeg: 90, trackDeg: 90, speedKt: 200,
			wantInbound: false,
		},
		{
			name: "closing head-on",
			// Due east of the observer, flying due west.
			distKm: 10, bearingDeg: 90, trackDeg: 270, speedKt: 300,
			wantInbound: true,
		},
		{
			name: "closing but passing wide",
			// Track 40 degrees off the reciprocal: cross-track ~6.4 km > 5.
			distKm: 10, bearingDeg: 90, trackDeg: 310, speedKt: 300,
			wantInbound: false,
		},
		{
			name:   "unknown track",
			distKm: 10, bearingDeg: 90, trackDeg: math.NaN(), speedKt: 300,
			wantInbound: false,
		},
		{
			name:   "unknown speed",
			distKm: 10, bearingDeg: 90, trackDeg: 270, speedKt: math.NaN(),
			wantInbound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbound, etaMin := classifyInbound(tt.distKm, tt.bearingDeg, tt.trackDeg, tt.speedKt, 5)

			if inbound != tt.wantInbound {
				t.Fatalf("inbound = %v, want %v", inbound, tt.wantInbound)
			}
			if !inbound {
				if !math.IsNaN(etaMin) {
					t.Errorf("eta = %v, want NaN for non-inbound", etaMin)
				}

				return
			}
			if tt.wantEtaZero && etaMin != 0 {
				t.Errorf("eta = %v, want 0 inside the alert radius", etaMin)
			}
			if !tt.wantEtaZero && (math.IsNaN(etaMin) || etaMin <= 0) {
				t.Errorf("eta = %v, want positive minutes for a closing aircraft", etaMin)
			}
		})
	}
}

func TestClassifyInboundEtaEstimate(t *testing.T) {
	// 10 km out, flying the reciprocal at 300 kt: along-track 10 km at
	// 9.26 km/min -> about 1.08 minutes.
	_, etaMin := classifyInbound(10, 90, 270, 300, 5)
	if math.Abs(etaMin-10/(300*knotsToKmPerMinute)) > epsilon {
		t.Errorf("eta = %v, want along-track / speed", etaMin)
	}
}
