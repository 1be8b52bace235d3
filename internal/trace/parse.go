package trace

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/racelog/internal/telemetry"
)

// StatusFields is the number of fields after the discriminator in a status row.
const StatusFields = 26

var errTripleCount = errors.New("waypoint tokens are not a multiple of 3")

// ParseWaypoints builds waypoints from the first row only; every waypoint row
// in a trace repeats the same list.
func ParseWaypoints(rows []Row) ([]telemetry.Waypoint, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]
	if len(row) < 2 {
		return nil, &FormatError{Kind: KindWaypoints, Err: fmt.Errorf("expected a discriminator, got %d tokens", len(row))}
	}
	fields := row[2:]
	if len(fields)%3 != 0 {
		return nil, &FormatError{Kind: KindWaypoints, Err: fmt.Errorf("%w: %d", errTripleCount, len(fields))}
	}

	waypoints := make([]telemetry.Waypoint, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		p := fieldParser{kind: KindWaypoints, row: fields}
		w := telemetry.Waypoint{
			Index: p.index(i),
			X:     p.float(i+1, "x"),
			Y:     p.float(i+2, "y"),
		}
		if p.err != nil {
			return nil, p.err
		}
		waypoints = append(waypoints, w)
	}
	return waypoints, nil
}

// ParseStatuses converts each status row into a record, preserving order.
func ParseStatuses(rows []Row) ([]telemetry.Status, error) {
	statuses := make([]telemetry.Status, 0, len(rows))
	for i, row := range rows {
		s, err := parseStatus(row)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Row = i
			}
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func parseStatus(row Row) (telemetry.Status, error) {
	if len(row) < StatusFields+2 {
		return telemetry.Status{}, &FormatError{
			Kind: KindStatus,
			Err:  fmt.Errorf("expected %d tokens, got %d", StatusFields+2, len(row)),
		}
	}

	p := fieldParser{kind: KindStatus, row: row}
	s := telemetry.Status{
		Timestamp:          p.float(2, "timestamp"),
		AllWheelsOnTrack:   p.bool(3),
		X:                  p.float(4, "x"),
		Y:                  p.float(5, "y"),
		DistanceFromCenter: p.float(6, "distance_from_center"),
		IsLeftOfCenter:     p.bool(7),
		Heading:            p.float(8, "heading"),
		Progress:           p.float(9, "progress"),
		Steps:              p.int(10, "steps"),
		Speed:              p.float(11, "speed"),
		SteeringAngle:      p.float(12, "steering_angle"),
		TrackWidth:         p.float(13, "track_width"),
		MaxSpeed:           p.float(14, "max_speed"),
		MaxSteer:           p.float(15, "max_steer"),
		Conditions: telemetry.Conditions{
			NearCentre:              p.bool(16),
			QuiteNearCentre:         p.bool(17),
			HeadingInRightDirection: p.bool(18),
			TurningHard:             p.bool(19),
			GoingStraight:           p.bool(20),
			GoingFast:               p.bool(21),
			GoingSlowly:             p.bool(22),
			CorrectingCourse:        p.bool(23),
		},
		RuleNumber:      p.int(24, "rule_number"),
		RuleDescription: unescape(row[25]),
		RewardLevel:     unescape(row[26]),
		Score:           p.float(27, "score"),
	}
	return s, p.err
}

// LoadTrack reads a whole trace and parses its waypoint and status rows.
// The first malformed row aborts the load.
func LoadTrack(r io.Reader) (*telemetry.Track, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	waypoints, err := ParseWaypoints(Filter(rows, KindWaypoints))
	if err != nil {
		return nil, err
	}
	statuses, err := ParseStatuses(Filter(rows, KindStatus))
	if err != nil {
		return nil, err
	}
	return telemetry.NewTrack(waypoints, statuses), nil
}

// fieldParser keeps the first conversion error so a record can be read
// field by field and checked once.
type fieldParser struct {
	kind string
	row  []string
	err  error
}

func (p *fieldParser) fail(i int, field string, err error) {
	if p.err == nil {
		p.err = &FormatError{Kind: p.kind, Field: field, Token: p.row[i], Err: err}
	}
}

func (p *fieldParser) float(i int, field string) float64 {
	v, err := strconv.ParseFloat(p.row[i], 64)
	if err != nil {
		p.fail(i, field, err)
	}
	return v
}

func (p *fieldParser) int(i int, field string) int {
	v, err := parseIntFromFloat(p.row[i])
	if err != nil {
		p.fail(i, field, err)
	}
	return int(v)
}

// index reads a waypoint index, which is always written as a plain integer.
func (p *fieldParser) index(i int) int {
	v, err := strconv.Atoi(p.row[i])
	if err != nil {
		p.fail(i, "index", err)
	}
	return v
}

// bool accepts exactly "true"; any other token reads as false.
func (p *fieldParser) bool(i int) bool {
	return p.row[i] == "true"
}

// parseIntFromFloat accepts "12" as well as integral floats such as "12.0",
// which is how the simulator reports step counts.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}

func unescape(s string) string { return strings.ReplaceAll(s, "_", " ") }

func escape(s string) string { return strings.ReplaceAll(s, " ", "_") }
