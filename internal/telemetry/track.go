package telemetry

import (
	"fmt"
	"math"
)

// Extents is the bounding box of every waypoint and car position on a track.
type Extents struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (e Extents) Width() float64  { return e.MaxX - e.MinX }
func (e Extents) Height() float64 { return e.MaxY - e.MinY }

// Track holds the records parsed from one trace source.
type Track struct {
	Waypoints []Waypoint
	Statuses  []Status
}

func NewTrack(waypoints []Waypoint, statuses []Status) *Track {
	return &Track{Waypoints: waypoints, Statuses: statuses}
}

// Extents recomputes the bounding box on every call. It fails with
// ErrDegenerateExtent when there are no points or the box is flat on
// either axis.
func (t *Track) Extents() (Extents, error) {
	e := Extents{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}

	grow := func(x, y float64) {
		e.MinX = math.Min(e.MinX, x)
		e.MaxX = math.Max(e.MaxX, x)
		e.MinY = math.Min(e.MinY, y)
		e.MaxY = math.Max(e.MaxY, y)
	}
	for _, w := range t.Waypoints {
		grow(w.X, w.Y)
	}
	for _, s := range t.Statuses {
		grow(s.X, s.Y)
	}

	if len(t.Waypoints)+len(t.Statuses) == 0 {
		return Extents{}, fmt.Errorf("%w: no points", ErrDegenerateExtent)
	}
	if e.Width() <= 0 || e.Height() <= 0 {
		return e, fmt.Errorf("%w: %gx%g", ErrDegenerateExtent, e.Width(), e.Height())
	}
	return e, nil
}

// StartTime is the timestamp of the first status.
func (t *Track) StartTime() (float64, error) {
	if len(t.Statuses) == 0 {
		return 0, ErrNoStatuses
	}
	return t.Statuses[0].Timestamp, nil
}

// Window returns statuses[start:end] clamped to the available range.
func (t *Track) Window(start, end int) []Status {
	n := len(t.Statuses)
	if end <= 0 || end > n {
		end = n
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}
	return t.Statuses[start:end]
}
