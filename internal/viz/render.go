package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/racelog/internal/geom"
	"github.com/san-kum/racelog/internal/telemetry"
)

// Tally accumulates counts across rendered frames. Callers own it and pass
// it into each Frame call.
type Tally struct {
	Frames     int
	NearCentre int
	OffTrack   int
	Levels     map[string]int
}

func NewTally() *Tally {
	return &Tally{Levels: make(map[string]int)}
}

func (t *Tally) Observe(s telemetry.Status) {
	t.Frames++
	if s.NearCentre {
		t.NearCentre++
	}
	if !s.AllWheelsOnTrack {
		t.OffTrack++
	}
	if t.Levels == nil {
		t.Levels = make(map[string]int)
	}
	t.Levels[s.RewardLevel]++
}

func (t *Tally) Reset() {
	t.Frames = 0
	t.NearCentre = 0
	t.OffTrack = 0
	t.Levels = make(map[string]int)
}

// Scene draws one track and its car onto a canvas.
type Scene struct {
	Canvas *Canvas
	View   *Viewport
	Track  *telemetry.Track
}

func NewScene(track *telemetry.Track, width, height, border int) (*Scene, error) {
	c := NewCanvas(width, height)
	vp, err := ForCanvas(c, track, border)
	if err != nil {
		return nil, err
	}
	return &Scene{Canvas: c, View: vp, Track: track}, nil
}

func (sc *Scene) line(a, b geom.Vec2, ink Ink) {
	x0, y0 := sc.View.Map(a)
	x1, y1 := sc.View.Map(b)
	sc.Canvas.DrawLine(x0, y0, x1, y1, ink)
}

// DrawTrack joins the waypoints into a closed loop.
func (sc *Scene) DrawTrack() {
	wps := sc.Track.Waypoints
	if len(wps) == 0 {
		return
	}
	prev := wps[len(wps)-1]
	for _, wp := range wps {
		sc.line(prev.Pos(), wp.Pos(), InkTrack)
		prev = wp
	}
}

// DrawTrail draws the driven line through the given statuses.
func (sc *Scene) DrawTrail(statuses []telemetry.Status) {
	for i := 1; i < len(statuses); i++ {
		sc.line(statuses[i-1].Pos(), statuses[i].Pos(), InkTrail)
	}
}

func (sc *Scene) DrawCar(s telemetry.Status) {
	ink := InkOnTrack
	if !s.AllWheelsOnTrack {
		ink = InkOffTrack
	}
	for _, seg := range CarOutline(s.Pos(), s.Heading, s.SteeringAngle) {
		sc.line(seg.A, seg.B, ink)
	}
}

// Frame redraws the scene with the car at the last status of driven and
// the trail through everything before it. tally may be nil.
func (sc *Scene) Frame(driven []telemetry.Status, tally *Tally) {
	sc.Canvas.Clear()
	sc.DrawTrack()
	if len(driven) == 0 {
		return
	}
	s := driven[len(driven)-1]
	sc.DrawTrail(driven)
	sc.DrawCar(s)
	if tally != nil {
		tally.Observe(s)
	}
}

// InfoBox lists speed, steps and reward, then each condition flag coloured
// by whether it is set.
func InfoBox(s telemetry.Status, tally *Tally) string {
	var b strings.Builder
	b.WriteString(MetricLabel.Render("Speed") + MetricValue.Render(fmt.Sprintf("%g", s.Speed)) + "\n")
	b.WriteString(MetricLabel.Render("Steps") + MetricValue.Render(fmt.Sprintf("%d", s.Steps)) + "\n")
	b.WriteString(MetricLabel.Render("Reward") + MetricValue.Render(fmt.Sprintf("%g", s.Score)) + "\n")
	b.WriteString(MetricLabel.Render("Rule") + MetricValue.Render(fmt.Sprintf("%d", s.RuleNumber)) + " " + Subtle.Render(s.RuleDescription) + "\n\n")

	flags := s.Conditions.Flags()
	half := (len(flags) + 1) / 2
	left := make([]string, 0, half)
	right := make([]string, 0, len(flags)-half)
	for i, f := range flags {
		line := FlagStyle(f.Set).Render(f.Label)
		if i < half {
			left = append(left, line)
		} else {
			right = append(right, line)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(30).Render(strings.Join(left, "\n")),
		strings.Join(right, "\n"),
	))

	if tally != nil && tally.Frames > 0 {
		b.WriteString("\n\n")
		b.WriteString(MetricLabel.Render("Centre") + MetricValue.Render(fmt.Sprintf("%d/%d", tally.NearCentre, tally.Frames)) + "\n")
		b.WriteString(MetricLabel.Render("Off track") + MetricValue.Render(fmt.Sprintf("%d", tally.OffTrack)))
	}
	return Panel.Render(b.String())
}
