package viz

import (
	"errors"
	"fmt"

	"github.com/san-kum/racelog/internal/geom"
	"github.com/san-kum/racelog/internal/telemetry"
)

var ErrNoRoom = errors.New("viz: border leaves no drawable area")

// Viewport maps track coordinates onto a pixel grid. The track extents fill
// the area inside the border and y grows downward on screen. Mapped points
// always fall on the grid.
type Viewport struct {
	Width, Height int
	Border        int
	ext           telemetry.Extents
}

func NewViewport(ext telemetry.Extents, width, height, border int) (*Viewport, error) {
	if ext.Width() <= 0 || ext.Height() <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", telemetry.ErrDegenerateExtent, ext.Width(), ext.Height())
	}
	if width-2*border <= 0 || height-2*border <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with border %d", ErrNoRoom, width, height, border)
	}
	return &Viewport{Width: width, Height: height, Border: border, ext: ext}, nil
}

// ForCanvas sizes a viewport to the canvas's sub-pixel grid.
func ForCanvas(c *Canvas, track *telemetry.Track, border int) (*Viewport, error) {
	ext, err := track.Extents()
	if err != nil {
		return nil, err
	}
	return NewViewport(ext, c.SubWidth(), c.SubHeight(), border)
}

func (v *Viewport) Extents() telemetry.Extents { return v.ext }

func (v *Viewport) Map(p geom.Vec2) (int, int) {
	spaceX := float64(v.Width - 2*v.Border)
	spaceY := float64(v.Height - 2*v.Border)

	x := v.Border + int((p.X-v.ext.MinX)*spaceX/v.ext.Width())
	y := v.Height - int((p.Y-v.ext.MinY)*spaceY/v.ext.Height()) - v.Border
	// the far edges land one past the grid when there is no border
	return max(0, min(x, v.Width-1)), max(0, min(y, v.Height-1))
}
