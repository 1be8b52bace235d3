package reward

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/racelog/internal/geom"
	"github.com/san-kum/racelog/internal/telemetry"
)

var (
	// ErrFieldType indicates a host parameter of the wrong type.
	ErrFieldType = errors.New("reward: wrong parameter type")

	// ErrWaypointIndex indicates closest waypoints outside the waypoint list.
	ErrWaypointIndex = errors.New("reward: closest waypoint index out of range")
)

// MissingFieldError reports a required host parameter that was not supplied.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("reward: missing parameter %q", e.Key)
}

// Snapshot is the car and track state the simulator hands to the reward
// function at one step.
type Snapshot struct {
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
	Waypoints          []geom.Vec2
	ClosestWaypoints   [2]int
}

// RequiredParams lists the keys SnapshotFromParams needs.
var RequiredParams = []string{
	"all_wheels_on_track", "x", "y", "distance_from_center", "is_left_of_center",
	"heading", "progress", "steps", "speed", "steering_angle", "track_width",
	"waypoints", "closest_waypoints",
}

// SnapshotFromParams converts the simulator's parameter map into a Snapshot.
// Numbers may arrive as any Go numeric type, as produced by JSON or YAML
// decoding.
func SnapshotFromParams(params map[string]any) (Snapshot, error) {
	for _, key := range RequiredParams {
		if _, ok := params[key]; !ok {
			return Snapshot{}, &MissingFieldError{Key: key}
		}
	}

	p := paramReader{params: params}
	s := Snapshot{
		AllWheelsOnTrack:   p.bool("all_wheels_on_track"),
		X:                  p.float("x"),
		Y:                  p.float("y"),
		DistanceFromCenter: p.float("distance_from_center"),
		IsLeftOfCenter:     p.bool("is_left_of_center"),
		Heading:            p.float("heading"),
		Progress:           p.float("progress"),
		Steps:              p.int("steps"),
		Speed:              p.float("speed"),
		SteeringAngle:      p.float("steering_angle"),
		TrackWidth:         p.float("track_width"),
		Waypoints:          p.points("waypoints"),
	}
	closest := p.ints("closest_waypoints")
	if p.err == nil && len(closest) != 2 {
		p.fail("closest_waypoints", fmt.Errorf("expected 2 indices, got %d", len(closest)))
	}
	if p.err != nil {
		return Snapshot{}, p.err
	}
	s.ClosestWaypoints = [2]int{closest[0], closest[1]}
	return s, nil
}

// WaypointRecords numbers the snapshot's waypoints by position.
func (s Snapshot) WaypointRecords() []telemetry.Waypoint {
	out := make([]telemetry.Waypoint, len(s.Waypoints))
	for i, w := range s.Waypoints {
		out[i] = telemetry.Waypoint{Index: i, X: w.X, Y: w.Y}
	}
	return out
}

type paramReader struct {
	params map[string]any
	err    error
}

func (p *paramReader) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s: %v", ErrFieldType, key, err)
	}
}

func (p *paramReader) bool(key string) bool {
	b, ok := p.params[key].(bool)
	if !ok {
		p.fail(key, fmt.Errorf("want bool, got %T", p.params[key]))
	}
	return b
}

func (p *paramReader) float(key string) float64 {
	f, err := toFloat(p.params[key])
	if err != nil {
		p.fail(key, err)
	}
	return f
}

func (p *paramReader) int(key string) int {
	n, err := toInt(p.params[key])
	if err != nil {
		p.fail(key, err)
	}
	return n
}

func (p *paramReader) ints(key string) []int {
	items, err := toSlice(p.params[key])
	if err != nil {
		p.fail(key, err)
		return nil
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, err := toInt(item)
		if err != nil {
			p.fail(key, fmt.Errorf("index %d: %w", i, err))
			return nil
		}
		out[i] = n
	}
	return out
}

func (p *paramReader) points(key string) []geom.Vec2 {
	switch v := p.params[key].(type) {
	case []geom.Vec2:
		return v
	case [][]float64:
		out := make([]geom.Vec2, len(v))
		for i, pt := range v {
			if len(pt) != 2 {
				p.fail(key, fmt.Errorf("point %d has %d coordinates", i, len(pt)))
				return nil
			}
			out[i] = geom.Vec2{X: pt[0], Y: pt[1]}
		}
		return out
	}

	items, err := toSlice(p.params[key])
	if err != nil {
		p.fail(key, err)
		return nil
	}
	out := make([]geom.Vec2, len(items))
	for i, item := range items {
		pair, err := toSlice(item)
		if err != nil || len(pair) != 2 {
			p.fail(key, fmt.Errorf("point %d is not an [x, y] pair", i))
			return nil
		}
		x, errX := toFloat(pair[0])
		y, errY := toFloat(pair[1])
		if err := errors.Join(errX, errY); err != nil {
			p.fail(key, fmt.Errorf("point %d: %w", i, err))
			return nil
		}
		out[i] = geom.Vec2{X: x, Y: y}
	}
	return out
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

// toInt accepts integral floats, since the simulator sends step counts as floats.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case uint:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("%v overflows int", f)
	}
	return int(f), nil
}

func toSlice(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case []int:
		out := make([]any, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out, nil
	case []float64:
		out := make([]any, len(s))
		for i, f := range s {
			out[i] = f
		}
		return out, nil
	case [2]int:
		return []any{s[0], s[1]}, nil
	}
	return nil, fmt.Errorf("want list, got %T", v)
}
