package internal

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const testFadeWindow = 10 * time.Second

func TestTableInsertCapacity(t *testing.T) {
	table := NewTable()

	for i := range MaxContacts {
		if _, ok := table.Insert(Contact{DistKm: float64(i)}); !ok {
			t.Fatalf("insert %d rejected before capacity", i)
		}
	}

	if _, ok := table.Insert(Contact{}); ok {
		t.Error("insert beyond capacity must be rejected")
	}
	if got := table.ValidCount(); got != MaxContacts {
		t.Errorf("ValidCount() = %d, want %d", got, MaxContacts)
	}
}

func TestTableResetClearsSelection(t *testing.T) {
	table := NewTable()
	idx, _ := table.Insert(Contact{Flight: "BAW123"})
	table.Select(idx)

	table.Reset()

	if table.ValidCount() != 0 {
		t.Error("Reset() must invalidate all slots")
	}
	if table.SelectedIndex() != NoSelection {
		t.Error("Reset() must clear the active selection")
	}
}

func TestRevealOnSweep(t *testing.T) {
	table := NewTable()
	inBeam, _ := table.Insert(Contact{Flight: "IN", DistKm: 20, BearingDeg: 90, Track: 45})
	outBeam, _ := table.Insert(Contact{Flight: "OUT", DistKm: 30, BearingDeg: 200})

	table.RevealOnSweep(85, 12, testEpoch)

	revealed := table.At(inBeam)
	if !revealed.Revealed() {
		t.Fatal("contact within beam width must be revealed")
	}
	if revealed.DispDistKm != 20 || revealed.DispBearingDeg != 90 || revealed.DispTrackDeg != 45 {
		t.Errorf("display fields not copied from raw: %+v", revealed)
	}
	if table.At(outBeam).Revealed() {
		t.Error("contact outside beam width must stay unrevealed")
	}

	// First reveal claims the selection.
	if table.SelectedIndex() != inBeam {
		t.Errorf("SelectedIndex() = %d, want %d", table.SelectedIndex(), inBeam)
	}
}

func TestRevealSkipsStaleContacts(t *testing.T) {
	table := NewTable()
	idx, _ := table.Insert(Contact{
		Flight:         "STALE",
		DistKm:         12,
		BearingDeg:     90,
		DispDistKm:     15,
		DispBearingDeg: 88,
		LastRevealed:   testEpoch.Add(-2 * time.Second),
		Stale:          true,
	})

	table.RevealOnSweep(90, 12, testEpoch)

	contact := table.At(idx)
	if contact.DispDistKm != 15 || !contact.LastRevealed.Equal(testEpoch.Add(-2*time.Second)) {
		t.Error("stale contact display snapshot must stay frozen")
	}
}

func TestDisplayFieldsStableBetweenReveals(t *testing.T) {
	table := NewTable()
	idx, _ := table.Insert(Contact{Flight: "BAW123", DistKm: 20, BearingDeg: 90})

	table.RevealOnSweep(90, 12, testEpoch)

	// New raw data arrives (as reconcile would write it)...
	table.At(idx).DistKm = 18
	table.At(idx).BearingDeg = 95

	// ...and sweep passes elsewhere: display snapshot must not move.
	table.RevealOnSweep(270, 12, testEpoch.Add(2*time.Second))

	contact := table.At(idx)
	if contact.DispDistKm != 20 || contact.DispBearingDeg != 90 {
		t.Errorf("display fields jittered outside reveal: %+v", contact)
	}
}

func TestExpire(t *testing.T) {
	table := NewTable()
	fading, _ := table.Insert(Contact{Flight: "OLD", LastRevealed: testEpoch.Add(-11 * time.Second)})
	fresh, _ := table.Insert(Contact{Flight: "NEW", LastRevealed: testEpoch.Add(-2 * time.Second)})
	unrevealed, _ := table.Insert(Contact{Flight: "WAIT"})
	table.Select(fading)

	dropped := table.Expire(testEpoch, testFadeWindow)

	if table.At(fading).Valid {
		t.Error("contact beyond the fade window must be invalidated")
	}
	if !dropped {
		t.Error("Expire must report that the selection was dropped")
	}
	if !table.At(fresh).Valid {
		t.Error("contact within the fade window must survive")
	}
	if !table.At(unrevealed).Valid {
		t.Error("never-revealed contact must survive until its first reveal")
	}
}

func TestFadeFraction(t *testing.T) {
	contact := Contact{LastRevealed: testEpoch}

	if got := contact.FadeFraction(testEpoch, testFadeWindow); got != 0 {
		t.Errorf("fresh reveal FadeFraction = %v, want 0", got)
	}
	if got := contact.FadeFraction(testEpoch.Add(5*time.Second), testFadeWindow); got != 0.5 {
		t.Errorf("half-window FadeFraction = %v, want 0.5", got)
	}
	if got := contact.FadeFraction(testEpoch.Add(time.Minute), testFadeWindow); got != 1 {
		t.Errorf("overdue FadeFraction = %v, want clamped 1", got)
	}

	never := Contact{}
	if got := never.FadeFraction(testEpoch, testFadeWindow); got != 1 {
		t.Errorf("unrevealed FadeFraction = %v, want 1", got)
	}
}
