package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/racelog/internal/telemetry"
)

type Metric interface {
	Name() string
	Observe(s telemetry.Status)
	Value() float64
	Reset()
}

// series collects one value per status.
type series struct {
	values []float64
}

func (s *series) add(v float64) { s.values = append(s.values, v) }
func (s *series) Reset() { s.values = s.values[:0] }

type MeanScore struct{ series }

func NewMeanScore() *MeanScore { return &MeanScore{} }

func (m *MeanScore) Name() string { return "mean_score" }
func (m *MeanScore) Observe(s telemetry.Status) { m.add(s.Score) }

func (m *MeanScore) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

// ScoreStdDev is the sample standard deviation; zero below two samples.
type ScoreStdDev struct{ series }

func NewScoreStdDev() *ScoreStdDev { return &ScoreStdDev{} }

func (m *ScoreStdDev) Name() string { return "score_stddev" }
func (m *ScoreStdDev) Observe(s telemetry.Status) { m.add(s.Score) }

func (m *ScoreStdDev) Value() float64 {
	if len(m.values) < 2 {
		return 0
	}
	return stat.StdDev(m.values, nil)
}

type TotalScore struct{ series }

func NewTotalScore() *TotalScore { return &TotalScore{} }

func (m *TotalScore) Name() string { return "total_score" }
func (m *TotalScore) Observe(s telemetry.Status) { m.add(s.Score) }
func (m *TotalScore) Value() float64 { return floats.Sum(m.values) }

type MeanAbsSteering struct{ series }

func NewMeanAbsSteering() *MeanAbsSteering { return &MeanAbsSteering{} }

func (m *MeanAbsSteering) Name() string { return "mean_abs_steering" }

func (m *MeanAbsSteering) Observe(s telemetry.Status) {
	m.add(math.Abs(s.SteeringAngle))
}

func (m *MeanAbsSteering) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

// Ratio is the fraction of observed statuses for which pred holds.
type Ratio struct {
	name    string
	pred    func(telemetry.Status) bool
	hits    int
	samples int
}

func NewRatio(name string, pred func(telemetry.Status) bool) *Ratio {
	return &Ratio{name: name, pred: pred}
}

func (r *Ratio) Name() string { return r.name }

func (r *Ratio) Observe(s telemetry.Status) {
	r.samples++
	if r.pred(s) {
		r.hits++
	}
}

func (r *Ratio) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.hits) / float64(r.samples)
}

func (r *Ratio) Reset() {
	r.hits = 0
	r.samples = 0
}

func OnTrack() *Ratio {
	return NewRatio("on_track", func(s telemetry.Status) bool { return s.AllWheelsOnTrack })
}

func NearCentre() *Ratio {
	return NewRatio("near_centre", func(s telemetry.Status) bool { return s.NearCentre })
}

func HeadingAligned() *Ratio {
	return NewRatio("heading_aligned", func(s telemetry.Status) bool { return s.HeadingInRightDirection })
}

// Standard returns a fresh set of the metrics reported by Summarize.
func Standard() []Metric {
	return []Metric{
		NewMeanScore(),
		NewScoreStdDev(),
		NewTotalScore(),
		OnTrack(),
		NearCentre(),
		HeadingAligned(),
		NewMeanAbsSteering(),
	}
}
