package viz

import (
	"github.com/san-kum/racelog/internal/geom"
)

// CarScale shrinks the outline to track units.
const CarScale = 0.1

type carVertex int

const (
	tail carVertex = iota
	nose
	blHub
	blTyre1
	blTyre2
	flHub
	flTyre1
	flTyre2
	brHub
	brTyre1
	brTyre2
	frHub
	frTyre1
	frTyre2
	numCarVertices
)

// Outline in car units, x forward and y to the right.
var carBody = [numCarVertices]geom.Vec2{
	tail:    {X: -2.0, Y: 0.0},
	nose:    {X: 2.5, Y: 0.0},
	blHub:   {X: -2.0, Y: -1.0},
	blTyre1: {X: -3.0, Y: -1.0},
	blTyre2: {X: -1.0, Y: -1.0},
	flHub:   {X: 2.0, Y: -1.0},
	flTyre1: {X: 1.0, Y: -1.0},
	flTyre2: {X: 3.0, Y: -1.0},
	brHub:   {X: -2.0, Y: 1.0},
	brTyre1: {X: -3.0, Y: 1.0},
	brTyre2: {X: -1.0, Y: 1.0},
	frHub:   {X: 2.0, Y: 1.0},
	frTyre1: {X: 1.0, Y: 1.0},
	frTyre2: {X: 3.0, Y: 1.0},
}

var carEdges = [][2]carVertex{
	{tail, nose},
	{blHub, brHub},
	{flHub, frHub},
	{blTyre1, blTyre2},
	{flTyre1, flTyre2},
	{brTyre1, brTyre2},
	{frTyre1, frTyre2},
}

type Segment struct {
	A, B geom.Vec2
}

// CarOutline places the car at pos in track coordinates. Heading and
// steering are in degrees, counter-clockwise positive; the front tyres turn
// about their hubs by the steering angle.
func CarOutline(pos geom.Vec2, heading, steering float64) []Segment {
	var placed [numCarVertices]geom.Vec2
	for i, v := range carBody {
		v = geom.RotateAroundOrigin(v, -heading)
		v = geom.Scale(v, CarScale)
		placed[i] = geom.Translate(v, pos)
	}

	for _, tyre := range []carVertex{flTyre1, flTyre2} {
		placed[tyre] = geom.RotateAroundPoint(placed[tyre], placed[flHub], -steering)
	}
	for _, tyre := range []carVertex{frTyre1, frTyre2} {
		placed[tyre] = geom.RotateAroundPoint(placed[tyre], placed[frHub], -steering)
	}

	segs := make([]Segment, len(carEdges))
	for i, e := range carEdges {
		segs[i] = Segment{A: placed[e[0]], B: placed[e[1]]}
	}
	return segs
}
