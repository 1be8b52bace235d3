package reward

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/san-kum/racelog/internal/telemetry"
	"github.com/san-kum/racelog/internal/trace"
)

type Result struct {
	Conditions telemetry.Conditions
	Outcome    Outcome
	Status     telemetry.Status
}

type Evaluator struct {
	limits Limits
	sink   io.Writer
	prefix string
	now    func() time.Time
}

type Option func(*Evaluator)

func WithLimits(l Limits) Option { return func(e *Evaluator) { e.limits = l } }

// WithSink sets where trace lines go; os.Stdout by default.
func WithSink(w io.Writer) Option { return func(e *Evaluator) { e.sink = w } }

func WithPrefix(p string) Option { return func(e *Evaluator) { e.prefix = p } }

func WithClock(now func() time.Time) Option { return func(e *Evaluator) { e.now = now } }

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		limits: DefaultLimits(),
		sink:   os.Stdout,
		prefix: trace.DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Limits() Limits { return e.limits }

// Evaluate scores s and writes one TRACE_STATUS and one TRACE_WAYPOINTS line
// to the sink.
func (e *Evaluator) Evaluate(s Snapshot) (Result, error) {
	c, err := Derive(s, e.limits)
	if err != nil {
		return Result{}, err
	}
	out := Judge(s, c)

	res := Result{
		Conditions: c,
		Outcome:    out,
		Status:     e.status(s, c, out),
	}

	enc := trace.NewEncoder(e.sink, e.prefix)
	if err := enc.WriteStatus(res.Status); err != nil {
		return res, fmt.Errorf("write status: %w", err)
	}
	if err := enc.WriteWaypoints(s.WaypointRecords()); err != nil {
		return res, fmt.Errorf("write waypoints: %w", err)
	}
	return res, nil
}

// Reward is the simulator-facing entry point: parameters in, score out.
func (e *Evaluator) Reward(params map[string]any) (float64, error) {
	s, err := SnapshotFromParams(params)
	if err != nil {
		return 0, err
	}
	res, err := e.Evaluate(s)
	if err != nil {
		return 0, err
	}
	return res.Outcome.Score, nil
}

func (e *Evaluator) status(s Snapshot, c telemetry.Conditions, out Outcome) telemetry.Status {
	return telemetry.Status{
		Timestamp:          float64(e.now().UnixNano()) / 1e9,
		AllWheelsOnTrack:   s.AllWheelsOnTrack,
		X:                  s.X,
		Y:                  s.Y,
		DistanceFromCenter: s.DistanceFromCenter,
		IsLeftOfCenter:     s.IsLeftOfCenter,
		Heading:            s.Heading,
		Progress:           s.Progress,
		Steps:              s.Steps,
		Speed:              s.Speed,
		SteeringAngle:      s.SteeringAngle,
		TrackWidth:         s.TrackWidth,
		MaxSpeed:           e.limits.MaxSpeed,
		MaxSteer:           e.limits.MaxSteer,
		Conditions:         c,
		RuleNumber:         out.Rule,
		RuleDescription:    out.Description,
		RewardLevel:        out.Level.String(),
		Score:              out.Score,
	}
}
