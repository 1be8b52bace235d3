package trace

import (
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/racelog/internal/telemetry"
)

// DefaultPrefix fills field 1 of emitted lines so the discriminator lands in
// field 2, where the log sink's own prefix would normally be.
const DefaultPrefix = "SIM_TRACE_LOG"

// Encoder writes trace lines that ReadRows and the parsers can read back.
type Encoder struct {
	w      io.Writer
	prefix string
}

func NewEncoder(w io.Writer, prefix string) *Encoder {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Encoder{w: w, prefix: escape(prefix)}
}

func (e *Encoder) WriteStatus(s telemetry.Status) error {
	_, err := io.WriteString(e.w, FormatStatus(e.prefix, s)+"\n")
	return err
}

func (e *Encoder) WriteWaypoints(waypoints []telemetry.Waypoint) error {
	_, err := io.WriteString(e.w, FormatWaypoints(e.prefix, waypoints)+"\n")
	return err
}

func FormatStatus(prefix string, s telemetry.Status) string {
	fields := []string{
		prefix,
		KindStatus,
		formatFloat(s.Timestamp),
		formatBool(s.AllWheelsOnTrack),
		formatFloat(s.X),
		formatFloat(s.Y),
		formatFloat(s.DistanceFromCenter),
		formatBool(s.IsLeftOfCenter),
		formatFloat(s.Heading),
		formatFloat(s.Progress),
		strconv.Itoa(s.Steps),
		formatFloat(s.Speed),
		formatFloat(s.SteeringAngle),
		formatFloat(s.TrackWidth),
		formatFloat(s.MaxSpeed),
		formatFloat(s.MaxSteer),
		formatBool(s.NearCentre),
		formatBool(s.QuiteNearCentre),
		formatBool(s.HeadingInRightDirection),
		formatBool(s.TurningHard),
		formatBool(s.GoingStraight),
		formatBool(s.GoingFast),
		formatBool(s.GoingSlowly),
		formatBool(s.CorrectingCourse),
		strconv.Itoa(s.RuleNumber),
		escape(s.RuleDescription),
		escape(s.RewardLevel),
		formatFloat(s.Score),
	}
	return strings.Join(fields, " ")
}

func FormatWaypoints(prefix string, waypoints []telemetry.Waypoint) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(KindWaypoints)
	for _, w := range waypoints {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(w.Index))
		b.WriteString(" ")
		b.WriteString(formatFloat(w.X))
		b.WriteString(" ")
		b.WriteString(formatFloat(w.Y))
	}
	return b.String()
}

// formatFloat writes the shortest exact representation, keeping a ".0" on
// integral values the way the simulator's own logs do.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
