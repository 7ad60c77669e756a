package scopeapp

import (
	"math"
	"time"

	"github.com/mfeld/skysweep/internal"
)

// faceLayout fixes where the radar disc sits on the canvas. Radius is in
// columns; rows are derived through the aspect correction.
type faceLayout struct {
	centerX int
	centerY int
	radius  float64
}

// compassBound caches the screen rectangle of one compass label. The labels
// are recomputed every frame because they move with the rotation setting,
// but their bounds are kept for hit-testing.
type compassBound struct {
	label string
	x     int
	y     int
	w     int
}

var compassPoints = []struct {
	label      string
	bearingDeg float64
}{
	{"N", 0},
	{"E", 90},
	{"S", 180},
	{"W", 270},
}

// drawFace composites the whole radar face for one frame: range rings, cross
// ticks, airspace zones scaled to the active range, home marker, alert ring,
// sweep line with trail, and every revealed contact with its fade level.
// Returns the compass label bounds for the touch layer.
func drawFace(
	canvas *Canvas,
	layout faceLayout,
	radar *internal.Radar,
	now time.Time,
	frame int,
) []compassBound {
	settings := radar.Settings()
	rangeKm := settings.RangeKm()
	rotationDeg := settings.RotationDeg()

	drawRingsAndTicks(canvas, layout, rotationDeg)
	drawZones(canvas, layout, radar.Observer(), rangeKm, rotationDeg)
	drawAlertRing(canvas, layout, settings.AlertKm(), rangeKm)

	// Home marker.
	canvas.Set(layout.centerX, layout.centerY, '+', styleBright)

	drawSweep(canvas, layout, radar.SweepAngle(now), rotationDeg)
	drawContacts(canvas, layout, radar, now, rangeKm, rotationDeg, frame)

	return drawCompass(canvas, layout, rotationDeg)
}

func drawRingsAndTicks(canvas *Canvas, layout faceLayout, rotationDeg float64) {
	const ringCount = 3

	for ring := 1; ring <= ringCount; ring++ {
		canvas.Ring(layout.centerX, layout.centerY, layout.radius*float64(ring)/ringCount, styleFaint)
	}

	// Dotted crosshair along the rotated cardinal directions.
	for _, cardinalDeg := range []float64{0, 90, 180, 270} {
		bearing := internal.NormalizeBearing(cardinalDeg + rotationDeg)
		for r := 2.0; r < layout.radius-1; r += 2.0 {
			canvas.PlotPolar(layout.centerX, layout.centerY, r, bearing, '.', styleFaint)
		}
	}
}

func drawZones(
	canvas *Canvas,
	layout faceLayout,
	observer internal.Coordinates,
	rangeKm, rotationDeg float64,
) {
	for _, zone := range internal.Zones {
		distKm := internal.Distance(observer, zone.Center).Kilometers()
		if distKm-zone.RadiusKm > rangeKm {
			continue
		}

		bearing := internal.NormalizeBearing(internal.Bearing(observer, zone.Center) + rotationDeg)
		centerRadius := distKm / rangeKm * layout.radius
		zoneX, zoneY := polarToCell(layout.centerX, layout.centerY, centerRadius, bearing)

		zoneRadius := zone.RadiusKm / rangeKm * layout.radius
		if zoneRadius >= 1.5 {
			canvas.Ring(zoneX, zoneY, zoneRadius, styleZone)
		}
		canvas.Text(zoneX-len(zone.ShortCode)/2, zoneY, zone.ShortCode, styleZone)
	}
}

func drawAlertRing(canvas *Canvas, layout faceLayout, alertKm, rangeKm float64) {
	if alertKm >= rangeKm {
		return
	}

	radius := alertKm / rangeKm * layout.radius
	steps := int(math.Ceil(radius * 4))
	if steps < 8 {
		steps = 8
	}
	for i := range steps {
		bearing := float64(i) / float64(steps) * 360.0
		canvas.PlotPolar(layout.centerX, layout.centerY, radius, bearing, '\'', styleDim)
	}
}

func drawSweep(canvas *Canvas, layout faceLayout, sweepDeg, rotationDeg float64) {
	head := internal.NormalizeBearing(sweepDeg + rotationDeg)

	// Trailing glow behind the head, dimming with angle.
	for _, trail := range []struct {
		offsetDeg float64
		style     cellStyle
	}{
		{16, styleFaint},
		{8, styleDim},
		{0, styleSweep},
	} {
		bearing := internal.NormalizeBearing(head - trail.offsetDeg)
		endX, endY := polarToCell(layout.centerX, layout.centerY, layout.radius, bearing)
		canvas.Line(layout.centerX, layout.centerY, endX, endY, sweepRune(bearing), trail.style)
	}
}

func sweepRune(bearingDeg float64) rune {
	sector := int(math.Round(bearingDeg/45.0)) % 8
	switch sector {
	case 0, 4:
		return '|'
	case 1, 5:
		return '/'
	case 2, 6:
		return '-'
	default:
		return '\\'
	}
}

func drawContacts(
	canvas *Canvas,
	layout faceLayout,
	radar *internal.Radar,
	now time.Time,
	rangeKm, rotationDeg float64,
	frame int,
) {
	table := radar.Table()
	fadeWindow := radar.Config().FadeWindow
	selected := table.SelectedIndex()

	for i := range internal.MaxContacts {
		contact := table.At(i)
		if !contact.Valid || !contact.Revealed() {
			continue
		}
		if contact.DispDistKm > rangeKm {
			continue
		}

		radius := contact.DispDistKm / rangeKm * layout.radius
		bearing := internal.NormalizeBearing(contact.DispBearingDeg + rotationDeg)
		x, y := polarToCell(layout.centerX, layout.centerY, radius, bearing)

		canvas.Set(x, y, contactRune(contact, rotationDeg), contactStyle(contact, now, fadeWindow, frame))

		if i == selected {
			canvas.Set(x-1, y, '[', styleBright)
			canvas.Set(x+1, y, ']', styleBright)
		}
	}
}

// contactRune picks the icon arrow from the contact's display track. A
// contact with unknown track points along its bearing from the observer.
func contactRune(contact *internal.Contact, rotationDeg float64) rune {
	arrows := []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

	headingDeg := contact.DispTrackDeg
	if math.IsNaN(headingDeg) {
		headingDeg = contact.DispBearingDeg
	}
	headingDeg = internal.NormalizeBearing(headingDeg + rotationDeg)

	return arrows[int(math.Round(headingDeg/45.0))%8]
}

// contactStyle maps fade age and inbound status onto a palette entry.
// Inbound contacts flash between alert and bright on alternate frames;
// stale ones are locked to the stale shade.
func contactStyle(contact *internal.Contact, now time.Time, fadeWindow time.Duration, frame int) cellStyle {
	if contact.Stale {
		return styleStale
	}
	if contact.Inbound {
		// Flash at roughly 2 Hz given the 25 Hz frame cadence.
		if (frame/6)%2 == 0 {
			return styleAlert
		}

		return styleBright
	}

	switch fade := contact.FadeFraction(now, fadeWindow); {
	case fade < 1.0/3.0:
		return styleBright
	case fade < 2.0/3.0:
		return styleMid
	default:
		return styleDim
	}
}

func drawCompass(canvas *Canvas, layout faceLayout, rotationDeg float64) []compassBound {
	bounds := make([]compassBound, 0, len(compassPoints))
	for _, point := range compassPoints {
		bearing := internal.NormalizeBearing(point.bearingDeg + rotationDeg)
		x, y := polarToCell(layout.centerX, layout.centerY, layout.radius+2, bearing)
		canvas.Text(x, y, point.label, styleLabel)
		bounds = append(bounds, compassBound{label: point.label, x: x, y: y, w: len(point.label)})
	}

	return bounds
}
