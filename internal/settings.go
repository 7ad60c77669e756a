package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// settingsMagic marks a trustworthy settings record. Anything else on
	// disk means defaults are applied and written back.
	settingsMagic byte = 0xA7

	settingsRecordLen = 4
	rotationSteps     = 4
)

// Selectable radar range and alert radius steps, in kilometers. The stored
// settings hold indices into these tables.
var (
	RangeStepsKm = [...]float64{10, 20, 50, 100}
	AlertStepsKm = [...]float64{2, 5, 10, 20}
)

// Settings is the small durable user state: which range ring layout is
// active, how large the inbound alert radius is, and how the scope face is
// rotated in quarter turns.
type Settings struct {
	RangeIdx int
	AlertIdx int
	Rotation int // 0-3, clockwise quarter turns
}

func DefaultSettings() Settings {
	return Settings{RangeIdx: 1, AlertIdx: 1, Rotation: 0}
}

// RangeKm returns the active radar range.
func (s Settings) RangeKm() float64 {
	return RangeStepsKm[s.RangeIdx]
}

// AlertKm returns the active inbound alert radius.
func (s Settings) AlertKm() float64 {
	return AlertStepsKm[s.AlertIdx]
}

// RotationDeg returns the display rotation in degrees.
func (s Settings) RotationDeg() float64 {
	return float64(s.Rotation) * 90.0
}

// CycleRange advances to the next range step, wrapping around.
func (s *Settings) CycleRange() {
	s.RangeIdx = (s.RangeIdx + 1) % len(RangeStepsKm)
}

// CycleAlert advances to the next alert radius step, wrapping around.
func (s *Settings) CycleAlert() {
	s.AlertIdx = (s.AlertIdx + 1) % len(AlertStepsKm)
}

// Rotate turns the display by a further quarter turn.
func (s *Settings) Rotate() {
	s.Rotation = (s.Rotation + 1) % rotationSteps
}

func (s Settings) valid() bool {
	return s.RangeIdx >= 0 && s.RangeIdx < len(RangeStepsKm) &&
		s.AlertIdx >= 0 && s.AlertIdx < len(AlertStepsKm) &&
		s.Rotation >= 0 && s.Rotation < rotationSteps
}

func (s Settings) encode() []byte {
	return []byte{settingsMagic, byte(s.RangeIdx), byte(s.AlertIdx), byte(s.Rotation)}
}

func decodeSettings(record []byte) (Settings, bool) {
	if len(record) != settingsRecordLen || record[0] != settingsMagic {
		return Settings{}, false
	}

	settings := Settings{
		RangeIdx: int(record[1]),
		AlertIdx: int(record[2]),
		Rotation: int(record[3]),
	}

	return settings, settings.valid()
}

// SettingsStore abstracts the durable storage for the settings record so the
// scheduler can be exercised in tests without touching the filesystem.
type SettingsStore interface {
	Read() ([]byte, error)
	Write(record []byte) error
}

// FileSettingsStore keeps the settings record in a small file.
type FileSettingsStore struct {
	Path string
}

func (f FileSettingsStore) Read() ([]byte, error) {
	record, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("settings: failed to read %s: %w", f.Path, err)
	}

	return record, nil
}

func (f FileSettingsStore) Write(record []byte) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, record, 0o644); err != nil {
		return fmt.Errorf("settings: failed to write %s: %w", f.Path, err)
	}

	return nil
}

// LoadSettings reads the stored record, falling back to defaults when the
// record is missing, too short, carries the wrong marker byte or holds
// out-of-range indices. The fallback is persisted immediately so the next
// boot finds a valid record.
func LoadSettings(store SettingsStore) Settings {
	record, err := store.Read()
	if err == nil {
		if settings, ok := decodeSettings(record); ok {
			return settings
		}
	}

	settings := DefaultSettings()
	_ = SaveSettings(store, settings)

	return settings
}

// SaveSettings persists the record with a valid marker.
func SaveSettings(store SettingsStore, settings Settings) error {
	return store.Write(settings.encode())
}
