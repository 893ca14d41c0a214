package track

import (
	"github.com/lociview/lociview/pkg/cache"
	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/render"
)

// Track is one horizontal band of a frame: a property bag, a renderer
// that draws it, and any coverages layered on top of it. Tracks are
// value-like; composition operators copy them rather than mutating
// the operands.
type Track struct {
	typ       string
	props     *Properties
	renderer  render.TrackRenderer
	coverages []*Coverage
}

// Type returns the track's type tag, e.g. "Bed" or "Cool".
func (t *Track) Type() string { return t.typ }

// Name returns the track's unique name.
func (t *Track) Name() string { return t.props.String("name") }

// Properties returns the track's property bag.
func (t *Track) Properties() *Properties { return t.props }

// Renderer returns the renderer drawing this track.
func (t *Track) Renderer() render.TrackRenderer { return t.renderer }

// Coverages returns the coverages layered over this track, in paint
// order.
func (t *Track) Coverages() []*Coverage {
	out := make([]*Coverage, len(t.coverages))
	copy(out, t.coverages)
	return out
}

// Height returns the track's height in layout units.
func (t *Track) Height() float64 { return t.props.Float("height") }

// JointRenderer reports whether this track can render a joint
// two-range view, returning the capable renderer when it can.
func (t *Track) JointRenderer() (render.JointRenderer, bool) {
	jr, ok := t.renderer.(render.JointRenderer)
	return jr, ok
}

// Add composes this track with other using the standard composition
// rules. See Compose.
func (t *Track) Add(other any) (any, error) {
	return Compose(t, other)
}

func (t *Track) clone() *Track {
	c := &Track{
		typ:      t.typ,
		props:    t.props.Clone(),
		renderer: t.renderer,
	}
	c.coverages = append(c.coverages, t.coverages...)
	return c
}

// appendCoverage layers cov onto the track. Position "top" appends to
// the overlay list so cov paints last; "bottom" prepends so existing
// coverages paint over it.
func (t *Track) appendCoverage(cov *Coverage, pos string) {
	if pos == PosBottom {
		t.coverages = append([]*Coverage{cov}, t.coverages...)
		return
	}
	t.coverages = append(t.coverages, cov)
}

// config collects everything a track constructor needs: the property
// bag under construction, the naming registry, and any injected data
// sources overriding the file-backed defaults.
type config struct {
	props *Properties
	reg   *Registry
	store cache.Cache

	intervals datasource.IntervalSource
	signal    datasource.SignalSource
	arcs      datasource.ArcSource
	matrix    datasource.MatrixSource
}

func newConfig() *config {
	return &config{props: NewProperties(), reg: DefaultRegistry}
}

func (c *config) apply(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func (c *config) finish(typ string) *Properties {
	name := c.reg.Name(typ, c.props.String("name"))
	c.props.Set("name", name)
	return c.props
}

// intervalSource returns the injected interval source or a BED file
// reader for path, wrapped in the cache when one is configured.
func (c *config) intervalSource(path string) datasource.IntervalSource {
	src := c.intervals
	if src == nil {
		src = datasource.NewBedFile(path)
	}
	if c.store != nil {
		src = datasource.NewCachedIntervals(src, path, c.store)
	}
	return src
}

// Option adjusts a track under construction.
type Option func(*config)

// With sets an arbitrary property. Boolean values are normalized to
// the yes/no sentinels.
func With(key string, value any) Option {
	return func(c *config) { c.props.Set(key, value) }
}

// WithName gives the track an explicit name instead of a
// registry-generated one.
func WithName(name string) Option { return With("name", name) }

// WithTitle sets the label drawn in the track's title column.
func WithTitle(title string) Option { return With("title", title) }

// WithHeight overrides the track's height in layout units.
func WithHeight(h float64) Option { return With("height", h) }

// WithColor overrides the track's primary color.
func WithColor(color string) Option { return With("color", color) }

// WithRegistry names the track from reg instead of DefaultRegistry.
func WithRegistry(reg *Registry) Option {
	return func(c *config) { c.reg = reg }
}

// WithCache caches fetched records in store, keyed by source path,
// file modification time, and genome range.
func WithCache(store cache.Cache) Option {
	return func(c *config) { c.store = store }
}

// WithIntervalSource substitutes src for the track's file-backed
// interval reader.
func WithIntervalSource(src datasource.IntervalSource) Option {
	return func(c *config) { c.intervals = src }
}

// WithSignalSource substitutes src for the track's file-backed signal
// reader.
func WithSignalSource(src datasource.SignalSource) Option {
	return func(c *config) { c.signal = src }
}

// WithArcSource substitutes src for the track's file-backed arc
// reader.
func WithArcSource(src datasource.ArcSource) Option {
	return func(c *config) { c.arcs = src }
}

// WithMatrixSource substitutes src for the track's matrix decoder.
// Binary matrix formats have no native decoder, so joint views are
// typically driven through this option.
func WithMatrixSource(src datasource.MatrixSource) Option {
	return func(c *config) { c.matrix = src }
}
