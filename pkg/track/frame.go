package track

import (
	"context"
	"time"

	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/observability"
	"github.com/lociview/lociview/pkg/render"
	"github.com/lociview/lociview/pkg/render/svg"
)

// Frame layout defaults, in layout units (centimetres at the default
// pixel scale).
const (
	defaultFrameWidth = 40.0
)

// defaultWidthRatios splits the frame width into title, plot, and
// legend columns.
var defaultWidthRatios = [3]float64{0.01, 0.93, 0.06}

// Frame is an ordered vertical stack of tracks sharing one genome
// range and one horizontal coordinate scale.
type Frame struct {
	props       *Properties
	widthRatios [3]float64
	tracks      []*Track
}

// NewFrame returns an empty frame with default geometry.
func NewFrame(opts ...Option) *Frame {
	c := newConfig()
	c.props.Set("width", defaultFrameWidth)
	c.apply(opts)
	return &Frame{props: c.props, widthRatios: defaultWidthRatios}
}

// Properties returns the frame's property bag.
func (f *Frame) Properties() *Properties { return f.props }

// Width returns the frame width in layout units.
func (f *Frame) Width() float64 { return f.props.Float("width") }

// SetWidth overrides the frame width.
func (f *Frame) SetWidth(w float64) { f.props.Set("width", w) }

// WidthRatios returns the title/plot/legend column split.
func (f *Frame) WidthRatios() [3]float64 { return f.widthRatios }

// SetWidthRatios overrides the column split.
func (f *Frame) SetWidthRatios(r [3]float64) { f.widthRatios = r }

// Height returns the sum of the track heights in layout units.
func (f *Frame) Height() float64 {
	var h float64
	for _, t := range f.tracks {
		h += t.Height()
	}
	return h
}

// Tracks returns the frame's tracks top to bottom.
func (f *Frame) Tracks() []*Track {
	out := make([]*Track, len(f.tracks))
	copy(out, f.tracks)
	return out
}

// AddTrack appends t to the bottom of the frame.
func (f *Frame) AddTrack(t *Track) { f.tracks = append(f.tracks, t) }

// AddTrackHead inserts t at the top of the frame.
func (f *Frame) AddTrackHead(t *Track) {
	f.tracks = append([]*Track{t}, f.tracks...)
}

// Add composes this frame with other. See Compose.
func (f *Frame) Add(other any) (any, error) {
	return Compose(f, other)
}

func (f *Frame) clone() *Frame {
	c := &Frame{props: f.props.Clone(), widthRatios: f.widthRatios}
	c.tracks = append(c.tracks, f.tracks...)
	return c
}

// Plot renders every track for gr and stacks the results vertically
// into one figure. Track errors abort the plot and propagate.
func (f *Frame) Plot(ctx context.Context, rc *render.Context, gr genome.Range) (*svg.Figure, error) {
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	hooks := observability.Plot()
	hooks.OnCompositeStart(ctx, "frame", len(f.tracks))
	start := time.Now()

	widthPx := rc.Px(f.Width())
	heightPx := rc.Px(f.Height())
	fig := svg.NewFigure(widthPx, heightPx)

	plotX := widthPx * f.widthRatios[0]
	plotW := widthPx * f.widthRatios[1]

	var y float64
	for _, t := range f.tracks {
		area := render.Area{X: plotX, Y: y, W: plotW, H: rc.Px(t.Height())}
		frag, err := renderTrack(ctx, rc, t, area, gr)
		if err != nil {
			hooks.OnCompositeComplete(ctx, "frame", time.Since(start), err)
			return nil, errors.Wrap(errors.ErrCodeRender, err,
				"rendering track %s", t.Name())
		}
		if len(frag) > 0 {
			fig.Append(svg.Fragment(frag))
		}
		y += area.H
	}

	hooks.OnCompositeComplete(ctx, "frame", time.Since(start), nil)
	return fig, nil
}

// renderTrack draws a track's base rendering, then its coverages in
// list order.
func renderTrack(ctx context.Context, rc *render.Context, t *Track, area render.Area, gr genome.Range) ([]byte, error) {
	hooks := observability.Plot()
	hooks.OnTrackRenderStart(ctx, t.Name())
	start := time.Now()

	var out []byte
	base, err := t.renderer.Render(ctx, rc, area, gr)
	if err != nil {
		hooks.OnTrackRenderComplete(ctx, t.Name(), time.Since(start), err)
		return nil, err
	}
	out = append(out, base...)
	for _, cov := range t.coverages {
		frag, err := cov.renderer.Render(ctx, rc, area, gr)
		if err != nil {
			hooks.OnTrackRenderComplete(ctx, t.Name(), time.Since(start), err)
			return nil, err
		}
		out = append(out, frag...)
	}
	hooks.OnTrackRenderComplete(ctx, t.Name(), time.Since(start), nil)
	return out, nil
}
