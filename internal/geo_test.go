package internal

import (
	"math"
	"testing"
)

// Point represents a geographic location.
type Point struct {
	Lat float64
	Lon float64
}

// Precision threshold for floating point comparison.
const epsilon = 0.01

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		p1       Point
		p2       Point
		expected float64
	}{
		{
			name:     "Due North",
			p1:       Point{Lat: 0, Lon: 0},
			p2:       Point{Lat: 10, Lon: 0},
			expected: 0.0,
		},
		{
			name:     "Due East",
			p1:       Point{Lat: 0, Lon: 0},
			p2:       Point{Lat: 0, Lon: 10},
			expected: 90.0,
		},
		{
			name:     "Due South",
			p1:       Point{Lat: 10, Lon: 0},
			p2:       Point{Lat: 0, Lon: 0},
			expected: 180.0,
		},
		{
			name:     "Due West",
			p1:       Point{Lat: 0, Lon: 10},
			p2:       Point{Lat: 0, Lon: 0},
			expected: 270.0,
		},
		{
			name:     "New York to London", // Long distance calculation
			p1:       Point{Lat: 40.7128, Lon: -74.0060},
			p2:       Point{Lat: 51.5074, Lon: -0.1278},
			expected: 51.21,
		},
		{
			name:     "London to New York", // Reciprocal of previous example
			p1:       Point{Lat: 51.5074, Lon: -0.1278},
			p2:       Point{Lat: 40.7128, Lon: -74.0060},
			expected: 288.33,
		},
		{
			name:     "Auckland to Honolulu", // Crossing International Date Line
			p1:       Point{Lat: -36.8485, Lon: 174.7633},
			p2:       Point{Lat: 21.3069, Lon: -157.8583},
			expected: 28.57,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(
				NewCoordinates(tt.p1.Lat, tt.p1.Lon),
				NewCoordinates(tt.p2.Lat, tt.p2.Lon))
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Bearing() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBearingRange(t *testing.T) {
	// Bearings must always come out in [0, 360), regardless of quadrant.
	points := []Point{
		{Lat: 54.0, Lon: -1.0},
		{Lat: 53.5, Lon: -2.5},
		{Lat: 55.1, Lon: 0.3},
		{Lat: -12.0, Lon: 130.9},
		{Lat: 0.0, Lon: 0.0},
	}

	for _, p := range points {
		for _, q := range points {
			got := Bearing(NewCoordinates(p.Lat, p.Lon), NewCoordinates(q.Lat, q.Lon))
			if got < 0 || got >= 360 {
				t.Errorf("Bearing(%v, %v) = %v, want value in [0, 360)", p, q, got)
			}
		}
	}
}

func TestDistanceProperties(t *testing.T) {
	a := NewCoordinates(54.0, -1.0)
	b := NewCoordinates(53.9576, -1.0827)

	if got := Distance(a, a).Kilometers(); got != 0 {
		t.Errorf("Distance(a, a) = %v, want 0", got)
	}

	forward := Distance(a, b).Kilometers()
	backward := Distance(b, a).Kilometers()
	if math.Abs(forward-backward) > epsilon {
		t.Errorf("Distance not symmetric: %v vs %v", forward, backward)
	}

	// Leeds Bradford airport is roughly 44 km from the default observer.
	lba := NewCoordinates(53.8659, -1.6606)
	if got := Distance(a, lba).Kilometers(); math.Abs(got-43.5) > 1.0 {
		t.Errorf("Distance to LBA = %v km, want roughly 43.5", got)
	}
}

func TestAngularDiff(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		expected float64
	}{
		{name: "identical", a: 90, b: 90, expected: 0},
		{name: "simple", a: 10, b: 40, expected: 30},
		{name: "wrap around north", a: 350, b: 10, expected: 20},
		{name: "opposite", a: 0, b: 180, expected: 180},
		{name: "negative input", a: -10, b: 10, expected: 20},
		{name: "beyond full circle", a: 370, b: 350, expected: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularDiff(tt.a, tt.b)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("AngularDiff(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}

			// Symmetry and range hold for every pair.
			if sym := AngularDiff(tt.b, tt.a); math.Abs(sym-got) > epsilon {
				t.Errorf("AngularDiff not symmetric: %v vs %v", got, sym)
			}
			if got < 0 || got > 180 {
				t.Errorf("AngularDiff(%v, %v) = %v, want value in [0, 180]", tt.a, tt.b, got)
			}
		})
	}
}
