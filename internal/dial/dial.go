// Package dial maps clock values onto ring rotations and digit positions.
//
// Angles are in degrees. Positive angles turn clockwise on screen, where
// y grows downward, and 0 points right as in standard trigonometry.
package dial

import (
	"math"

	"github.com/rook-computer/ringclock/internal/clock"
)

// RotationAngle returns how far a ring is turned for value v of period.
// It is negative: rings turn against the hand direction so the numeral
// for the current value ends up at the top.
func RotationAngle(v, period float64) float64 {
	if period <= 0 {
		return 0
	}
	return -(v / period) * 360
}

// HourFraction returns the 12-hour position including minute progress,
// so the hour ring moves smoothly instead of jumping on the hour.
func HourFraction(hour, minute int) float64 {
	return float64(hour%12) + float64(minute)/60
}

// DigitPosition places digit i of count on a circle of radius around the
// origin, with i == count at the top.
func DigitPosition(i, count int, radius float64) (x, y float64) {
	angle := float64(i) / float64(count) * 360
	rad := (angle - 90) * math.Pi / 180
	return radius * math.Cos(rad), radius * math.Sin(rad)
}

// Rotate turns (x, y) around the origin by deg.
func Rotate(x, y, deg float64) (float64, float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return x*cos - y*sin, x*sin + y*cos
}

// Angles holds the rotation of each ring for one instant.
type Angles struct {
	Hours   float64
	Minutes float64
	Seconds float64
}

// RingAngles returns the rotation of each ring at t.
func RingAngles(t clock.Time) Angles {
	return Angles{
		Hours:   RotationAngle(HourFraction(t.Hour, t.Minute), 12),
		Minutes: RotationAngle(float64(t.Minute), 60),
		Seconds: RotationAngle(float64(t.Second), 60),
	}
}

// Ring describes one circle of numerals. Radius and TextSize are fractions
// of the clock diameter.
type Ring struct {
	Count    int
	Radius   float64
	TextSize float64
}

// Ring geometry for the hour, minute and second numerals.
var (
	HourRing   = Ring{Count: 12, Radius: 0.4, TextSize: 0.1}
	MinuteRing = Ring{Count: 60, Radius: 0.5, TextSize: 0.04}
	SecondRing = Ring{Count: 60, Radius: 0.56, TextSize: 0.025}
)

// Resting hand lengths as fractions of the diameter.
const (
	ShortHand = 0.18
	LongHand  = 0.35
)

// Diameter returns the clock diameter for a surface of width x height.
func Diameter(width, height int) float64 {
	return 0.7 * float64(min(width, height))
}
