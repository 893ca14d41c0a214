package tracks

import (
	"context"

	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

// Vlines overlays vertical dashed lines at fixed genome positions.
// It is a coverage renderer: drawn on top of a track's base rendering.
type Vlines struct {
	Positions []int
	Color     string
	LineWidth float64
}

// Render draws one line per in-range position.
func (v Vlines) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	color := v.Color
	if color == "" {
		color = "#1e1e1e"
	}
	width := v.LineWidth
	if width == 0 {
		width = 0.5
	}
	scale := area.W / float64(gr.Length())

	var f frag
	for _, pos := range v.Positions {
		if pos < gr.Start || pos >= gr.End {
			continue
		}
		x := area.X + float64(pos-gr.Start)*scale
		f.line(x, area.Y, x, area.Y+area.H, color, width)
	}
	return f.Bytes(), nil
}

// Highlights overlays translucent rectangles over genome intervals.
type Highlights struct {
	Intervals []genome.Range
	Color     string
	Alpha     float64
}

// Render draws one band per in-range interval.
func (h Highlights) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	color := h.Color
	if color == "" {
		color = "#ff9c9c"
	}
	alpha := h.Alpha
	if alpha == 0 {
		alpha = 0.35
	}
	scale := area.W / float64(gr.Length())

	var f frag
	for _, iv := range h.Intervals {
		if !iv.Overlaps(gr) {
			continue
		}
		lo, hi := iv.Start, iv.End
		if lo < gr.Start {
			lo = gr.Start
		}
		if hi > gr.End {
			hi = gr.End
		}
		x := area.X + float64(lo-gr.Start)*scale
		w := float64(hi-lo) * scale
		f.rect(x, area.Y, w, area.H, color, "fill-opacity=\""+num(alpha)+"\"")
	}
	return f.Bytes(), nil
}
