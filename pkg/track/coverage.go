package track

import (
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
	"github.com/lociview/lociview/pkg/render/tracks"
)

// Coverage paint positions relative to the base track.
const (
	PosTop    = "top"
	PosBottom = "bottom"
)

// Coverage is an overlay painted across a track's plot area, such as
// vertical guide lines or highlighted bands. Coverages have no height
// of their own.
type Coverage struct {
	typ      string
	props    *Properties
	renderer render.TrackRenderer
}

// Type returns the coverage's type tag.
func (c *Coverage) Type() string { return c.typ }

// Name returns the coverage's unique name.
func (c *Coverage) Name() string { return c.props.String("name") }

// Properties returns the coverage's property bag.
func (c *Coverage) Properties() *Properties { return c.props }

// Renderer returns the renderer painting this coverage.
func (c *Coverage) Renderer() render.TrackRenderer { return c.renderer }

// Add composes this coverage with other. See Compose.
func (c *Coverage) Add(other any) (any, error) {
	return Compose(c, other)
}

func (c *Coverage) clone() *Coverage {
	return &Coverage{typ: c.typ, props: c.props.Clone(), renderer: c.renderer}
}

// CoverageStack groups coverages so they can be applied to a track as
// a unit. The position flag decides whether members paint above or
// below the base track.
type CoverageStack struct {
	pos       string
	coverages []*Coverage
}

// NewCoverageStack groups covs with the given paint position, one of
// PosTop or PosBottom.
func NewCoverageStack(pos string, covs ...*Coverage) *CoverageStack {
	if pos != PosBottom {
		pos = PosTop
	}
	s := &CoverageStack{pos: pos}
	s.coverages = append(s.coverages, covs...)
	return s
}

// Position returns the stack's paint position.
func (s *CoverageStack) Position() string { return s.pos }

// Coverages returns the stack members in order.
func (s *CoverageStack) Coverages() []*Coverage {
	out := make([]*Coverage, len(s.coverages))
	copy(out, s.coverages)
	return out
}

// Add composes this stack with other. See Compose.
func (s *CoverageStack) Add(other any) (any, error) {
	return Compose(s, other)
}

func (s *CoverageStack) clone() *CoverageStack {
	c := &CoverageStack{pos: s.pos}
	c.coverages = append(c.coverages, s.coverages...)
	return c
}

// NewVlines builds a coverage drawing dashed vertical guide lines at
// the given genome positions.
func NewVlines(positions []int, opts ...Option) *Coverage {
	c := newConfig()
	c.props.Set("line_style", "dashed")
	c.props.Set("line_width", 0.5)
	c.props.Set("color", "#1e1e1e")
	c.apply(opts)
	props := c.finish("Vlines")
	return &Coverage{
		typ:   "Vlines",
		props: props,
		renderer: tracks.Vlines{
			Positions: positions,
			Color:     props.String("color"),
			LineWidth: props.Float("line_width"),
		},
	}
}

// NewHighlights builds a coverage shading the given genome intervals
// with translucent bands.
func NewHighlights(regions []genome.Range, opts ...Option) *Coverage {
	c := newConfig()
	c.props.Set("color", "#ff9c9c")
	c.props.Set("alpha", 0.35)
	c.apply(opts)
	props := c.finish("Highlights")
	return &Coverage{
		typ:   "Highlights",
		props: props,
		renderer: tracks.Highlights{
			Intervals: regions,
			Color:     props.String("color"),
			Alpha:     props.Float("alpha"),
		},
	}
}
