package reward

import (
	"fmt"
	"math"

	"github.com/san-kum/racelog/internal/geom"
	"github.com/san-kum/racelog/internal/telemetry"
)

const (
	NearCentreFraction      = 0.10
	QuiteNearCentreFraction = 0.25
	DirectionThreshold      = 10.0
	FastFraction            = 0.9
	SlowFraction            = 0.51
	HardSteerFraction       = 0.9

	DefaultMaxSpeed = 2.0
	DefaultMaxSteer = 30.0
)

// Limits are the action-space bounds the speed and steering flags are
// measured against.
type Limits struct {
	MaxSpeed float64
	MaxSteer float64
}

func DefaultLimits() Limits {
	return Limits{MaxSpeed: DefaultMaxSpeed, MaxSteer: DefaultMaxSteer}
}

// Derive computes the driving-condition flags for one snapshot.
func Derive(s Snapshot, l Limits) (telemetry.Conditions, error) {
	dir, err := TrackDirection(s)
	if err != nil {
		return telemetry.Conditions{}, err
	}

	steeringLeft := s.SteeringAngle > 0
	steeringRight := s.SteeringAngle < 0

	return telemetry.Conditions{
		NearCentre:              s.DistanceFromCenter <= NearCentreFraction*s.TrackWidth,
		QuiteNearCentre:         s.DistanceFromCenter <= QuiteNearCentreFraction*s.TrackWidth,
		HeadingInRightDirection: math.Abs(dir-s.Heading) < DirectionThreshold,
		TurningHard:             math.Abs(s.SteeringAngle) > HardSteerFraction*l.MaxSteer,
		GoingStraight:           s.SteeringAngle == 0.0,
		GoingFast:               s.Speed > FastFraction*l.MaxSpeed,
		GoingSlowly:             s.Speed <= SlowFraction*l.MaxSpeed,
		CorrectingCourse:        (s.IsLeftOfCenter && steeringRight) || (!s.IsLeftOfCenter && steeringLeft),
	}, nil
}

// TrackDirection is the centre-line direction in degrees between the two
// closest waypoints.
func TrackDirection(s Snapshot) (float64, error) {
	prevIdx, nextIdx := s.ClosestWaypoints[0], s.ClosestWaypoints[1]
	n := len(s.Waypoints)
	if prevIdx < 0 || prevIdx >= n || nextIdx < 0 || nextIdx >= n {
		return 0, fmt.Errorf("%w: %v of %d", ErrWaypointIndex, s.ClosestWaypoints, n)
	}
	return geom.HeadingBetween(s.Waypoints[prevIdx], s.Waypoints[nextIdx]), nil
}
