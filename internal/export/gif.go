package export

import (
	"errors"
	"image"
	"image/gif"
	"io"

	"github.com/san-kum/racelog/internal/telemetry"
	"github.com/san-kum/racelog/internal/viz"
)

// Pixel size of one braille cell in a GIF frame.
const (
	CellWidth  = 8
	CellHeight = 16
)

var ErrNoFrames = errors.New("export: no statuses to render")

type GIFOptions struct {
	FPS    int
	Width  int
	Height int
	Border int
	Theme  viz.Theme
}

// Frame rasterises the canvas, colouring each lit dot with its cell's ink.
func Frame(c *viz.Canvas, th viz.Theme) *image.Paletted {
	dotW, dotH := CellWidth/2, CellHeight/4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*CellWidth, c.Height*CellHeight), th.Palette())

	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if !c.Lit(x, y) {
				continue
			}
			idx := uint8(c.Inks[y/4][x/2])
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, idx)
				}
			}
		}
	}
	return img
}

// WriteGIF renders one frame per status and encodes a looping animation.
// tally may be nil.
func WriteGIF(w io.Writer, track *telemetry.Track, statuses []telemetry.Status, opts GIFOptions, tally *viz.Tally) error {
	if len(statuses) == 0 {
		return ErrNoFrames
	}
	scene, err := viz.NewScene(track, opts.Width, opts.Height, opts.Border)
	if err != nil {
		return err
	}

	delay := 10
	if opts.FPS > 0 {
		delay = max(1, 100/opts.FPS)
	}

	anim := gif.GIF{LoopCount: 0}
	for i := range statuses {
		scene.Frame(statuses[:i+1], tally)
		anim.Image = append(anim.Image, Frame(scene.Canvas, opts.Theme))
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
