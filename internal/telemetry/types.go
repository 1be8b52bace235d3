package telemetry

import "github.com/san-kum/racelog/internal/geom"

type Waypoint struct {
	Index int
	X, Y  float64
}

func (w Waypoint) Pos() geom.Vec2 { return geom.Vec2{X: w.X, Y: w.Y} }

// Conditions are the driving-condition flags derived from one snapshot.
type Conditions struct {
	NearCentre              bool
	QuiteNearCentre         bool
	HeadingInRightDirection bool
	TurningHard             bool
	GoingStraight           bool
	GoingFast               bool
	GoingSlowly             bool
	CorrectingCourse        bool
}

// Flag pairs a condition label with its value, in wire order.
type Flag struct {
	Label string
	Set   bool
}

func (c Conditions) Flags() []Flag {
	return []Flag{
		{"Near Centre Of Track", c.NearCentre},
		{"Quite Near Centre Of Track", c.QuiteNearCentre},
		{"Heading In Right Direction", c.HeadingInRightDirection},
		{"Turning Hard", c.TurningHard},
		{"Going Straight", c.GoingStraight},
		{"Going Fast", c.GoingFast},
		{"Going Slowly", c.GoingSlowly},
		{"Correcting Course", c.CorrectingCourse},
	}
}

// Status is one observation of the car at a simulation step, together with
// the conditions and rule outcome the reward function computed for it.
type Status struct {
	Timestamp          float64
	AllWheelsOnTrack   bool
	X, Y               float64
	DistanceFromCenter float64
	IsLeftOfCenter     bool
	Heading            float64
	Progress           float64
	Steps              int
	Speed              float64
	SteeringAngle      float64
	TrackWidth         float64
	MaxSpeed           float64
	MaxSteer           float64

	Conditions

	RuleNumber      int
	RuleDescription string
	RewardLevel     string
	Score           float64
}

func (s Status) Pos() geom.Vec2 { return geom.Vec2{X: s.X, Y: s.Y} }
