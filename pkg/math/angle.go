package math

import (
	"math"

	"github.com/chewxy/math32"
)

// Angle constants in float32.
const (
	Pi    = float32(math.Pi)
	TwoPi = float32(2 * math.Pi)
)

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / Pi
}

// WrapAngle maps a into (-π, π].
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+Pi, TwoPi)
	if a <= 0 {
		a += TwoPi
	}
	return a - Pi
}

// AngularDistance returns the unsigned shortest angle between a and b, in [0, π].
// Both inputs are expected in [-π, π], as returned by atan2.
func AngularDistance(a, b float32) float32 {
	return Pi - math32.Abs(math32.Abs(b-a)-Pi)
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
