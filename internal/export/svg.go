package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/racelog/internal/geom"
	"github.com/san-kum/racelog/internal/telemetry"
	"github.com/san-kum/racelog/internal/viz"
)

type SVGOptions struct {
	Width  int
	Height int
	Border int
	Theme  viz.Theme
}

// WriteSVG draws the track loop, the driven line and the car at its final
// status.
func WriteSVG(w io.Writer, track *telemetry.Track, opts SVGOptions) error {
	ext, err := track.Extents()
	if err != nil {
		return err
	}
	vp, err := viz.NewViewport(ext, opts.Width, opts.Height, opts.Border)
	if err != nil {
		return err
	}
	th := opts.Theme

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, th.Background))

	if len(track.Waypoints) > 1 {
		pts := make([]geom.Vec2, len(track.Waypoints))
		for i, wp := range track.Waypoints {
			pts[i] = wp.Pos()
		}
		sb.WriteString(path(vp, pts, true, string(th.Track), 5))
	}

	if len(track.Statuses) > 1 {
		pts := make([]geom.Vec2, len(track.Statuses))
		for i, s := range track.Statuses {
			pts[i] = s.Pos()
		}
		sb.WriteString(path(vp, pts, false, string(th.Trail), 1.5))
	}

	if n := len(track.Statuses); n > 0 {
		last := track.Statuses[n-1]
		stroke := th.OnTrack
		if !last.AllWheelsOnTrack {
			stroke = th.OffTrack
		}
		for _, seg := range viz.CarOutline(last.Pos(), last.Heading, last.SteeringAngle) {
			x1, y1 := vp.Map(seg.A)
			x2, y2 := vp.Map(seg.B)
			sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>
`, x1, y1, x2, y2, stroke))
		}
	}

	sb.WriteString("</svg>\n")
	_, err = io.WriteString(w, sb.String())
	return err
}

func path(vp *viz.Viewport, pts []geom.Vec2, closed bool, stroke string, width float64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%g" d="`, stroke, width))
	for i, p := range pts {
		x, y := vp.Map(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%d,%d", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%d,%d", x, y))
		}
	}
	if closed {
		sb.WriteString(" Z")
	}
	sb.WriteString("\"/>\n")
	return sb.String()
}
