// Package geom provides 2D coordinate transforms for track and car geometry.
//
// All operations take and return [Vec2] values and never mutate their inputs:
//
//   - [Translate]: slide a point by a delta
//   - [Scale]: move a point towards or away from the origin
//   - [RotateAroundOrigin]: rotation of axes about (0, 0)
//   - [RotateAroundPoint]: rotation about an arbitrary pivot
//
// # Sign Convention
//
// [RotateAroundOrigin] uses the rotation-of-axes formula, so a positive angle
// turns the point clockwise. Negate the angle for a counter-clockwise turn:
//
//	nose := geom.RotateAroundOrigin(geom.Vec2{X: 2.5}, -heading)
package geom
