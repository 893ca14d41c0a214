// Package joint composes a center joint-matrix plot with up to four
// peripheral frames into one SVG figure. The center track draws a
// two-range heat plot; peripheral frames share its horizontal scale
// and are placed around it by pure offset arithmetic.
package joint

import (
	"context"
	"time"

	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/observability"
	"github.com/lociview/lociview/pkg/render"
	"github.com/lociview/lociview/pkg/render/svg"
	"github.com/lociview/lociview/pkg/track"
)

// Peripheral sides in trbl order.
const (
	SideTop    = "top"
	SideRight  = "right"
	SideBottom = "bottom"
	SideLeft   = "left"
)

var sideOrder = []string{SideTop, SideRight, SideBottom, SideLeft}

// Layout defaults, in layout units (centimetres at the default pixel
// scale).
const (
	defaultCenterWidth = 20.0
	defaultTRBL        = "1212"
	defaultSpace       = 1.0
	defaultPaddingLeft = 1.0
)

// JointView lays out a center two-range plot with peripheral frames.
type JointView struct {
	props  *track.Properties
	center *track.Track
	joint  render.JointRenderer
	frames map[string]*track.Frame
}

// Option adjusts a joint view under construction.
type Option func(*JointView)

// WithCenterWidth sets the center plot's edge length in layout units.
func WithCenterWidth(w float64) Option {
	return func(j *JointView) { j.props.Set("center_width", w) }
}

// WithTRBL sets which genome range each side uses: four characters in
// top/right/bottom/left order, '1' for the first range and '2' for
// the second. The default "1212" puts range one on the horizontal
// sides and range two on the vertical ones.
func WithTRBL(trbl string) Option {
	return func(j *JointView) { j.props.Set("trbl", trbl) }
}

// WithSpace sets the gap between the center plot and each peripheral
// frame.
func WithSpace(space float64) Option {
	return func(j *JointView) { j.props.Set("space", space) }
}

// WithPaddingLeft sets the left margin of the whole figure.
func WithPaddingLeft(pad float64) Option {
	return func(j *JointView) { j.props.Set("padding_left", pad) }
}

// sideOption attaches v to the named side. Bare tracks are wrapped in
// a single-track frame.
func sideOption(side string, v any) Option {
	return func(j *JointView) {
		switch t := v.(type) {
		case *track.Frame:
			j.frames[side] = t
		case *track.Track:
			f := track.NewFrame()
			f.AddTrack(t)
			j.frames[side] = f
		}
	}
}

// WithTop places a frame or track above the center plot.
func WithTop(v any) Option { return sideOption(SideTop, v) }

// WithRight places a frame or track to the right of the center plot.
func WithRight(v any) Option { return sideOption(SideRight, v) }

// WithBottom places a frame or track below the center plot.
func WithBottom(v any) Option { return sideOption(SideBottom, v) }

// WithLeft places a frame or track to the left of the center plot.
func WithLeft(v any) Option { return sideOption(SideLeft, v) }

// New builds a joint view around center. The center track must be
// able to render a two-range joint plot, and at least two peripheral
// sides must be populated.
func New(center *track.Track, opts ...Option) (*JointView, error) {
	j := &JointView{
		props:  track.NewProperties(),
		center: center,
		frames: make(map[string]*track.Frame),
	}
	j.props.Set("center_width", defaultCenterWidth)
	j.props.Set("trbl", defaultTRBL)
	j.props.Set("space", defaultSpace)
	j.props.Set("padding_left", defaultPaddingLeft)
	for _, opt := range opts {
		opt(j)
	}

	if center == nil {
		return nil, errors.New(errors.ErrCodeInvalidCenter, "center track is required")
	}
	jr, ok := center.JointRenderer()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidCenter,
			"center track %s cannot render a joint plot; use a contact matrix track", center.Type())
	}
	j.joint = jr

	if len(j.frames) < 2 {
		return nil, errors.New(errors.ErrCodeInsufficientSides,
			"need at least 2 of top, right, bottom, left, got %d", len(j.frames))
	}
	if err := validateTRBL(j.props.String("trbl")); err != nil {
		return nil, err
	}

	j.adjustFrameWidths()
	return j, nil
}

func validateTRBL(trbl string) error {
	if len(trbl) != 4 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"trbl must be 4 characters, got %q", trbl)
	}
	for _, c := range trbl {
		if c != '1' && c != '2' {
			return errors.New(errors.ErrCodeInvalidConfig,
				"trbl may only contain '1' and '2', got %q", trbl)
		}
	}
	return nil
}

// adjustFrameWidths rescales every peripheral frame so its plot
// column spans exactly the center width.
func (j *JointView) adjustFrameWidths() {
	cw := j.props.Float("center_width")
	for _, f := range j.frames {
		middle := f.WidthRatios()[1]
		f.SetWidth(cw / middle)
	}
}

// Properties returns the view's property bag.
func (j *JointView) Properties() *track.Properties { return j.props }

// Frame returns the frame on the given side, if populated.
func (j *JointView) Frame(side string) (*track.Frame, bool) {
	f, ok := j.frames[side]
	return f, ok
}

// Size returns the figure's width and height in layout units.
func (j *JointView) Size() (w, h float64) {
	space := j.props.Float("space")
	cw := j.props.Float("center_width")
	w, h = cw, cw
	if f, ok := j.frames[SideTop]; ok {
		w = f.Width()
		h += f.Height() + space
	}
	if f, ok := j.frames[SideBottom]; ok {
		w = f.Width()
		h += f.Height() + space
	}
	if f, ok := j.frames[SideLeft]; ok {
		w += f.Height() + space
	}
	if f, ok := j.frames[SideRight]; ok {
		w += f.Height() + space
	}
	return w, h
}

// centerOffsets returns the center plot's top-left corner in layout
// units.
func (j *JointView) centerOffsets() (x, y float64) {
	space := j.props.Float("space")
	x = j.props.Float("padding_left")
	if f, ok := j.frames[SideTop]; ok {
		x += f.Width() * f.WidthRatios()[0]
		y += space + f.Height()
	} else if f, ok := j.frames[SideBottom]; ok {
		x += f.Width() * f.WidthRatios()[0]
	}
	if f, ok := j.frames[SideLeft]; ok {
		x += space + f.Height()
	}
	return x, y
}

// rangeFor resolves which genome range the given side plots.
func (j *JointView) rangeFor(side string, r1, r2 genome.Range) genome.Range {
	trbl := j.props.String("trbl")
	for i, s := range sideOrder {
		if s == side {
			if trbl[i] == '1' {
				return r1
			}
			return r2
		}
	}
	return r1
}

// Plot renders the center plot and every peripheral frame, placing
// them on one canvas. When r2 is zero the view plots r1 against
// itself.
func (j *JointView) Plot(ctx context.Context, rc *render.Context, r1, r2 genome.Range) (*svg.Figure, error) {
	if r2.IsZero() {
		r2 = r1
	}
	if err := r1.Validate(); err != nil {
		return nil, err
	}
	if err := r2.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Plot()
	hooks.OnCompositeStart(ctx, "joint", len(j.frames)+1)
	start := time.Now()
	fig, err := j.plot(ctx, rc, r1, r2)
	hooks.OnCompositeComplete(ctx, "joint", time.Since(start), err)
	return fig, err
}

func (j *JointView) plot(ctx context.Context, rc *render.Context, r1, r2 genome.Range) (*svg.Figure, error) {
	centerX, centerY := j.centerOffsets()

	center, err := j.plotCenter(ctx, rc, r1, r2)
	if err != nil {
		return nil, err
	}
	center.Move(rc.Px(centerX), rc.Px(centerY))

	panels := []*svg.Element{center}
	for _, side := range sideOrder {
		f, ok := j.frames[side]
		if !ok {
			continue
		}
		el, err := j.plotFrame(ctx, rc, side, f, j.rangeFor(side, r1, r2))
		if err != nil {
			return nil, err
		}
		j.transformSide(rc, side, f, el, centerX, centerY)
		panels = append(panels, el)
	}

	w, h := j.Size()
	j.props.Set("width", w)
	j.props.Set("height", h)
	return svg.NewFigure(rc.Px(w), rc.Px(h), panels...), nil
}

// plotCenter renders the joint heat plot into a square panel of edge
// center_width, via a temp file like the peripheral frames.
func (j *JointView) plotCenter(ctx context.Context, rc *render.Context, r1, r2 genome.Range) (*svg.Element, error) {
	edge := rc.Px(j.props.Float("center_width"))
	area := render.Area{X: 0, Y: 0, W: edge, H: edge}
	frag, err := j.joint.RenderJoint(ctx, rc, area, r1, r2)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err,
			"rendering joint center %s", j.center.Name())
	}
	fig := svg.NewFigure(edge, edge, svg.Fragment(frag))
	path := rc.TempSVG("center")
	if err := fig.Save(path); err != nil {
		return nil, err
	}
	return svg.Load(path)
}

func (j *JointView) plotFrame(ctx context.Context, rc *render.Context, side string, f *track.Frame, gr genome.Range) (*svg.Element, error) {
	fig, err := f.Plot(ctx, rc, gr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rendering %s frame", side)
	}
	path := rc.TempSVG("frame_")
	if err := fig.Save(path); err != nil {
		return nil, err
	}
	return svg.Load(path)
}

// transformSide positions a peripheral panel relative to the center.
// Only the top and right sides are placed; bottom and left panels are
// composed onto the canvas untransformed.
//
// TODO: derive bottom (mirror below the center) and left (rotate -90)
// placements so all four sides land correctly.
func (j *JointView) transformSide(rc *render.Context, side string, f *track.Frame, el *svg.Element, centerX, centerY float64) {
	cw := j.props.Float("center_width")
	space := j.props.Float("space")
	switch side {
	case SideTop:
		el.Move(rc.Px(j.props.Float("padding_left")), 0)
	case SideRight:
		el.Rotate(90)
		wr := f.WidthRatios()
		el.Move(
			rc.Px(centerX+cw+f.Height()+space),
			rc.Px(centerY-f.Width()*wr[0]),
		)
	case SideBottom, SideLeft:
		rc.Log.Warn("panel placement not implemented, composing untransformed",
			"side", side)
	}
}
