// Package scopeapp provides the interactive radar scope TUI. The face is
// composited into an off-screen cell canvas every frame and blitted to the
// terminal in one string, which avoids visible tearing from incremental
// draws.
package scopeapp

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// aspectRatio corrects for terminal cells being roughly twice as tall as
// they are wide: one unit of radius spans two columns but only one row.
const aspectRatio = 0.5

// cellStyle indexes the theme style a cell is painted with. Keeping a small
// index per cell instead of a full style makes the canvas a flat reusable
// buffer.
type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleFaint
	styleDim
	styleMid
	styleBright
	styleSweep
	styleAlert
	styleStale
	styleZone
	styleLabel

	styleCount
)

// Canvas is the off-screen composition buffer. It is allocated once at
// layout time and cleared and repainted every frame.
type Canvas struct {
	width  int
	height int
	cells  []rune
	styles []cellStyle
}

func NewCanvas(width, height int) *Canvas {
	canvas := &Canvas{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
		styles: make([]cellStyle, width*height),
	}
	canvas.Clear()

	return canvas
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear blanks the buffer for the next composition pass.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
		c.styles[i] = styleBlank
	}
}

// Set paints a single cell. Out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, r rune, style cellStyle) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}

	idx := y*c.width + x
	c.cells[idx] = r
	c.styles[idx] = style
}

// Text writes a string starting at the given cell.
func (c *Canvas) Text(x, y int, text string, style cellStyle) {
	for i, r := range text {
		c.Set(x+i, y, r, style)
	}
}

// PlotPolar paints a cell at the given distance (in canvas radius units) and
// bearing from a center, aspect-corrected. Bearing 0 points up.
func (c *Canvas) PlotPolar(centerX, centerY int, radius, bearingDeg float64, r rune, style cellStyle) {
	x, y := polarToCell(centerX, centerY, radius, bearingDeg)
	c.Set(x, y, r, style)
}

// Line draws a straight run of cells with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, style cellStyle) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Ring draws an aspect-corrected circle by stepping the bearing. The rune
// for each cell follows the local ring direction.
func (c *Canvas) Ring(centerX, centerY int, radius float64, style cellStyle) {
	// Step fine enough that adjacent plots touch on the widest ring.
	steps := int(math.Ceil(radius * 8))
	if steps < 16 {
		steps = 16
	}

	for i := range steps {
		bearingDeg := float64(i) / float64(steps) * 360.0
		c.PlotPolar(centerX, centerY, radius, bearingDeg, ringRune(bearingDeg), style)
	}
}

// ringRune picks the character matching the ring's direction at a bearing.
func ringRune(bearingDeg float64) rune {
	sector := int(math.Round(bearingDeg/45.0)) % 8
	switch sector {
	case 0, 4: // north, south
		return '-'
	case 1, 5: // NE, SW
		return '/'
	case 2, 6: // east, west
		return '|'
	default: // SE, NW
		return '\\'
	}
}

// Blit renders the whole buffer into one styled string. Runs of cells with
// the same style are grouped so the output stays compact.
func (c *Canvas) Blit(palette *[styleCount]lipgloss.Style) string {
	var out strings.Builder
	var run strings.Builder

	for y := range c.height {
		if y > 0 {
			out.WriteByte('\n')
		}

		runStyle := c.styles[y*c.width]
		run.Reset()
		for x := range c.width {
			idx := y*c.width + x
			if c.styles[idx] != runStyle {
				out.WriteString(palette[runStyle].Render(run.String()))
				run.Reset()
				runStyle = c.styles[idx]
			}
			run.WriteRune(c.cells[idx])
		}
		out.WriteString(palette[runStyle].Render(run.String()))
	}

	return out.String()
}

// polarToCell maps a distance and bearing around a center onto a cell,
// applying the terminal aspect correction.
func polarToCell(centerX, centerY int, radius, bearingDeg float64) (int, int) {
	bearingRad := bearingDeg * math.Pi / 180.0
	x := centerX + int(math.Round(radius*math.Sin(bearingRad)))
	y := centerY - int(math.Round(radius*math.Cos(bearingRad)*aspectRatio))

	return x, y
}

// cellDistance computes the aspect-corrected distance from a cell to a
// center, in radius units.
func cellDistance(x, y, centerX, centerY int) float64 {
	dx := float64(x - centerX)
	dy := float64(y-centerY) / aspectRatio

	return math.Sqrt(dx*dx + dy*dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
