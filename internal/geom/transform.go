package geom

import "math"

func Translate(v, delta Vec2) Vec2 {
	return Vec2{v.X + delta.X, v.Y + delta.Y}
}

func Scale(v Vec2, factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

// RotateAroundOrigin applies the rotation-of-axes formula. Positive degrees
// turn the point clockwise.
func RotateAroundOrigin(v Vec2, degrees float64) Vec2 {
	rad := Radians(degrees)
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Vec2{
		v.X*cos + v.Y*sin,
		-v.X*sin + v.Y*cos,
	}
}

// RotateAroundPoint moves pivot to the origin, rotates, then moves it back.
// The three steps are kept separate so results match the composition exactly.
func RotateAroundPoint(v, pivot Vec2, degrees float64) Vec2 {
	moved := Translate(v, pivot.Neg())
	rotated := RotateAroundOrigin(moved, degrees)
	return Translate(rotated, pivot)
}
