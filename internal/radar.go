package internal

import (
	"log/slog"
	"math"
	"time"
)

// Radar is the whole application state behind the scope: settings, the
// contact table, the closest-aircraft cache, cycle counters and the sweep
// and fetch timing. All methods take the current time as a parameter instead
// of reading the wall clock, so tests can drive the scheduler with synthetic
// timestamps.
//
// Radar is not safe for concurrent use. Both frontends funnel every mutation
// through a single event loop, mirroring the cooperative single-threaded
// loop of the original device.
type Radar struct {
	cfg      Config
	store    SettingsStore
	settings Settings
	logger   *slog.Logger

	table   *Table
	closest Contact
	stats   CycleStats

	dataAvailable bool
	sweepEpoch    time.Time
	lastFetch     time.Time
	fetchForced   bool
}

// NewRadar loads the durable settings and prepares an empty scope.
func NewRadar(cfg Config, store SettingsStore, logger *slog.Logger) *Radar {
	return &Radar{
		cfg:      cfg,
		store:    store,
		settings: LoadSettings(store),
		logger:   logger,
		table:    NewTable(),
	}
}

// Start pins the sweep epoch. The first FetchDue after Start is immediate.
func (r *Radar) Start(now time.Time) {
	r.sweepEpoch = now
}

// Accessors for the render layer.

func (r *Radar) Config() Config { return r.cfg }
func (r *Radar) Settings() Settings { return r.settings }
func (r *Radar) Table() *Table { return r.table }
func (r *Radar) Closest() Contact { return r.closest }
func (r *Radar) Stats() CycleStats { return r.stats }
func (r *Radar) DataAvailable() bool { return r.dataAvailable }
func (r *Radar) Observer() Coordinates { return r.cfg.Observer() }

// FetchDue reports whether a new feed cycle should run now, either because
// the fixed period elapsed or because a settings change forced one.
func (r *Radar) FetchDue(now time.Time) bool {
	return r.fetchForced || r.lastFetch.IsZero() || now.Sub(r.lastFetch) >= r.cfg.FetchInterval
}

// ApplyFeed reconciles a raw feed body into the contact table. The old table
// is never mutated; a fresh one is built and swapped in, so a render between
// ticks always observes a consistent snapshot. A parse failure clears the
// scope exactly like a transport failure.
func (r *Radar) ApplyFeed(body []byte, now time.Time) {
	reports, err := ParseFeed(body)
	if err != nil {
		r.ApplyFeedError(err, now)

		return
	}

	next, closest, stats := BuildCycle(
		reports,
		r.table,
		r.Observer(),
		r.settings.RangeKm(),
		r.settings.AlertKm(),
		now,
		r.cfg.FadeWindow,
	)

	r.table = next
	r.closest = closest
	r.stats = stats
	r.dataAvailable = true
	r.lastFetch = now
	r.fetchForced = false
}

// ApplyFeedError is the single handler for every fetch-layer failure:
// connectivity absent, transport error or garbled document. No partial state
// survives a failed cycle.
func (r *Radar) ApplyFeedError(err error, now time.Time) {
	if r.logger != nil {
		r.logger.Error("radar: feed cycle failed", slog.Any("error", err))
	}

	r.table.Reset()
	r.closest = Contact{}
	r.stats = CycleStats{}
	r.dataAvailable = false
	r.lastFetch = now
	r.fetchForced = false
}

// SweepAngle returns the world-bearing of the sweep line at the given time,
// in [0, 360). The display rotation is applied at draw time, uniformly, so
// reveal hit-testing always runs in world bearings.
func (r *Radar) SweepAngle(now time.Time) float64 {
	if r.sweepEpoch.IsZero() || r.cfg.SweepPeriod <= 0 {
		return 0
	}

	elapsed := now.Sub(r.sweepEpoch)
	turns := float64(elapsed%r.cfg.SweepPeriod) / float64(r.cfg.SweepPeriod)

	return NormalizeBearing(turns * fullCircleDeg)
}

// FrameAdvance runs the per-frame contact lifecycle: reveal whatever the
// beam is passing, then expire whatever has faded out. Returns whether the
// detail panel content may have changed.
func (r *Radar) FrameAdvance(now time.Time) bool {
	panelDirty := r.table.RevealOnSweep(r.SweepAngle(now), r.cfg.BeamWidthDeg, now)
	if r.table.Expire(now, r.cfg.FadeWindow) {
		panelDirty = true
	}

	return panelDirty
}

// CycleRange steps to the next radar range. The table, the closest-aircraft
// cache and the counters are cleared because every stored distance was
// computed against the old range gate, and an immediate fetch is forced to
// repopulate the scope.
func (r *Radar) CycleRange() {
	r.settings.CycleRange()
	r.persistSettings()
	r.clearForSettingsChange()
}

// CycleAlert steps to the next alert radius. Same clearing rules as
// CycleRange: inbound classification depends on the radius.
func (r *Radar) CycleAlert() {
	r.settings.CycleAlert()
	r.persistSettings()
	r.clearForSettingsChange()
}

// Rotate turns the scope face by a quarter turn. Pure display change, the
// table survives.
func (r *Radar) Rotate() {
	r.settings.Rotate()
	r.persistSettings()
}

func (r *Radar) clearForSettingsChange() {
	r.table.Reset()
	r.closest = Contact{}
	r.stats = CycleStats{}
	r.fetchForced = true
}

func (r *Radar) persistSettings() {
	if err := SaveSettings(r.store, r.settings); err != nil && r.logger != nil {
		r.logger.Error("radar: failed to persist settings", slog.Any("error", err))
	}
}

// PanelEta formats helper: minutes-to-closest-approach is NaN when the
// geometry cannot be computed; the panel shows a dash instead of a number.
func PanelEta(etaMin float64) (float64, bool) {
	if math.IsNaN(etaMin) {
		return 0, false
	}

	return etaMin, true
}
