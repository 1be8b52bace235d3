package geom

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

func (v Vec2) Sub(other Vec2) Vec2 { return Vec2{v.X - other.X, v.Y - other.Y} }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func Radians(deg float64) float64 { return deg * (math.Pi / 180) }

func Degrees(rad float64) float64 { return rad * (180 / math.Pi) }

// HeadingBetween returns the direction of travel from prev to next in degrees,
// in (-180, 180].
func HeadingBetween(prev, next Vec2) float64 {
	d := next.Sub(prev)
	return Degrees(math.Atan2(d.Y, d.X))
}
