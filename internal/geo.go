package internal

import (
	"math"
)

// Inspired by https://github.com/LucaTheHacker/go-haversine

// Constants

const (
	earthRadiusKilometers    float64 = 6371 // Radius of Earth in kilometers
	earthRadiusMiles         float64 = 3958 // Radius of Earth in miles
	earthRadiusNauticalMiles float64 = 3443 // Radius of Earth in miles
	piHalf                   float64 = math.Pi / 180

	fullCircleDeg float64 = 360.0
	halfCircleDeg float64 = 180.0
)

// Conversion functions

func degreesToRadian(d float64) float64 {
	return d * piHalf
}

func radiansToDegree(r float64) float64 {
	return r / piHalf
}

// Coordinate type

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinates returns a coordinates struct based on parameters passed.
func NewCoordinates(latitude, longitude float64) Coordinates {
	return Coordinates{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coordinates) toRadians() Coordinates {
	return Coordinates{
		Latitude:  degreesToRadian(c.Latitude),
		Longitude: degreesToRadian(c.Longitude),
	}
}

// distance type

type DistanceStruct struct {
	C float64 // Must be multiplied to obtain distance. Public in order to allow unexpected calculations.
}

func newDistanceStruct(distance float64) DistanceStruct {
	return DistanceStruct{C: distance}
}

func (d DistanceStruct) Kilometers() float64 {
	return d.C * earthRadiusKilometers
}

func (d DistanceStruct) Miles() float64 {
	return d.C * earthRadiusMiles
}

func (d DistanceStruct) NauticalMiles() float64 {
	return d.C * earthRadiusNauticalMiles
}

// Distance calculates distance using the haversine formula.
//
//nolint:mnd // readability of mathmatic formula
func Distance(p, q Coordinates) DistanceStruct {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLat := toPos.Latitude - fromPos.Latitude
	deltaLon := toPos.Longitude - fromPos.Longitude

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(fromPos.Latitude)*
			math.Cos(toPos.Latitude)*
			math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return newDistanceStruct(c)
}

// Bearing calculates the initial bearing (forward azimuth) from point p towards point q,
// normalized to [0, 360) with 0 = north, increasing clockwise.
func Bearing(p, q Coordinates) float64 {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLon := toPos.Longitude - fromPos.Longitude

	y := math.Sin(deltaLon) * math.Cos(toPos.Latitude)
	x := math.Cos(fromPos.Latitude)*math.Sin(toPos.Latitude) -
		math.Sin(fromPos.Latitude)*math.Cos(toPos.Latitude)*math.Cos(deltaLon)

	brngDeg := radiansToDegree(math.Atan2(y, x))

	// Atan2 ranges from -180 to +180, normalize to [0, 360).
	return math.Mod(brngDeg+fullCircleDeg, fullCircleDeg)
}

// NormalizeBearing wraps an arbitrary angle in degrees to [0, 360).
func NormalizeBearing(deg float64) float64 {
	normalized := math.Mod(deg, fullCircleDeg)
	if normalized < 0 {
		normalized += fullCircleDeg
	}

	return normalized
}

// AngularDiff returns the minimal absolute angular distance between two bearings
// in degrees. The result is always within [0, 180].
func AngularDiff(a, b float64) float64 {
	diff := math.Abs(NormalizeBearing(a) - NormalizeBearing(b))
	if diff > halfCircleDeg {
		diff = fullCircleDeg - diff
	}

	return diff
}
