package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TileSize is the edge length of one level tile in world units.
const TileSize = 24

const (
	HalfPi = math.Pi / 2
	TwoPi  = math.Pi * 2
)

// Compass angles in screen space (y grows downward).
const (
	AngleE  = 0.0
	AngleSE = math.Pi / 4
	AngleS  = math.Pi / 2
	AngleSW = 3 * math.Pi / 4
	AngleW  = math.Pi
	AngleNW = -3 * math.Pi / 4
	AngleN  = -math.Pi / 2
	AngleNE = -math.Pi / 4
)

const fuzzyEpsilon = 1e-5

// FuzzyEq reports whether a and b differ by less than 1e-5.
func FuzzyEq(a, b float64) bool {
	return math.Abs(a-b) < fuzzyEpsilon
}

// NormalizeAngle maps a onto (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a <= -math.Pi {
		a += TwoPi
	} else if a > math.Pi {
		a -= TwoPi
	}
	return a
}

// AngleDiff returns the shortest signed rotation that turns from onto to,
// normalized to (-pi, pi].
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// VecAngle returns the heading of v.
func VecAngle(v cp.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

// CosSin returns the unit vector for angle a.
func CosSin(a float64) cp.Vector {
	return cp.Vector{X: math.Cos(a), Y: math.Sin(a)}
}

// InterpolateVec maps x from [x0, x1] onto the segment a..b. The endpoints are
// returned exactly.
func InterpolateVec(a, b cp.Vector, x0, x1, x float64) cp.Vector {
	if x1 == x0 || x >= x1 {
		return b
	}
	if x <= x0 {
		return a
	}
	t := (x - x0) / (x1 - x0)
	return cp.Vector{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// ChebyshevDistance is max(|dx|, |dy|).
func ChebyshevDistance(a, b cp.Vector) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}
