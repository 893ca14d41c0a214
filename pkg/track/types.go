package track

import (
	"path/filepath"
	"strings"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/render/tracks"
)

// Default track heights in layout units.
const (
	spacerHeight = 1.0
	xAxisHeight  = 2.0
	bandHeight   = 3.0
	matrixHeight = 20.0
)

// NewSpacer builds a blank track used to separate neighbors.
func NewSpacer(opts ...Option) *Track {
	c := newConfig()
	c.props.Set("height", spacerHeight)
	c.apply(opts)
	return &Track{
		typ:      "Spacer",
		props:    c.finish("Spacer"),
		renderer: tracks.Spacer{},
	}
}

// NewXAxis builds a genome coordinate axis track.
func NewXAxis(opts ...Option) *Track {
	c := newConfig()
	c.props.Set("height", xAxisHeight)
	c.props.Set("fontsize", 15.0)
	c.props.Set("where", "bottom")
	c.apply(opts)
	props := c.finish("XAxis")
	return &Track{
		typ:   "XAxis",
		props: props,
		renderer: tracks.XAxis{
			Fontsize: props.Float("fontsize"),
			Where:    props.String("where"),
		},
	}
}

// NewBed builds an interval track backed by a BED file.
func NewBed(path string, opts ...Option) *Track {
	c := newConfig()
	c.props.Set("file", path)
	c.props.Set("height", bandHeight)
	c.props.Set("color", "bed_rgb")
	c.props.Set("border_color", "black")
	c.props.Set("fontsize", 12.0)
	c.props.Set("labels", "auto")
	c.props.Set("display", "stacked")
	c.apply(opts)
	props := c.finish("Bed")
	return &Track{
		typ:   "Bed",
		props: props,
		renderer: tracks.Bed{
			Source:      c.intervalSource(path),
			Color:       props.String("color"),
			BorderColor: props.String("border_color"),
			Fontsize:    props.Float("fontsize"),
			Labels:      labelMode(props.String("labels")),
			Display:     props.String("display"),
		},
	}
}

// labelMode maps the stored labels property onto the renderer's
// on/off/auto vocabulary, accepting the boolean sentinels.
func labelMode(v string) string {
	switch v {
	case BoolYes:
		return "on"
	case BoolNo:
		return "off"
	default:
		return v
	}
}

// NewTADs builds a domain-triangle track backed by a BED file of
// topologically associating domains.
func NewTADs(path string, opts ...Option) *Track {
	c := newConfig()
	c.props.Set("file", path)
	c.props.Set("height", bandHeight)
	c.props.Set("color", "#b2182b")
	c.props.Set("border_color", "#666666")
	c.props.Set("orientation", "normal")
	c.apply(opts)
	props := c.finish("TADs")
	return &Track{
		typ:   "TADs",
		props: props,
		renderer: tracks.TADs{
			Source:      c.intervalSource(path),
			Color:       props.String("color"),
			BorderColor: props.String("border_color"),
			Orientation: props.String("orientation"),
		},
	}
}

func (c *config) signalSource(path string) datasource.SignalSource {
	if c.signal != nil {
		return c.signal
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bedgraph", ".bg":
		return datasource.NewBedGraphFile(path)
	}
	return datasource.NewExternalSignal(path)
}

func signalRenderer(c *config, path string) tracks.Signal {
	props := c.props
	return tracks.Signal{
		Source:        c.signalSource(path),
		Color:         props.String("color"),
		NumberOfBins:  int(props.Float("number_of_bins")),
		Style:         props.String("style"),
		MaxValue:      props.Float("max_value"),
		MinValue:      props.Float("min_value"),
		AutoMax:       props.String("max_value") == "auto",
		AutoMin:       props.String("min_value") == "auto",
		ShowDataRange: props.String("show_data_range"),
		Orientation:   props.String("orientation"),
		Fontsize:      props.Float("fontsize"),
	}
}

// NewBigWig builds a signal track backed by a bigWig file.
func NewBigWig(path string, opts ...Option) *Track {
	c := newConfig()
	c.props.Set("file", path)
	c.props.Set("height", bandHeight)
	c.props.Set("color", "#dfccde")
	c.props.Set("number_of_bins", 700)
	c.props.Set("style", "fill")
	c.props.Set("max_value", "auto")
	c.props.Set("min_value", "auto")
	c.props.Set("show_data_range", true)
	c.props.Set("orientation", "normal")
	c.props.Set("fontsize", 12.0)
	c.apply(opts)
	props := c.finish("BigWig")
	return &Track{
		typ:      "BigWig",
		props:    props,
		renderer: signalRenderer(c, path),
	}
}

// NewBedGraph builds a signal track backed by a bedGraph file.
func NewBedGraph(path string, opts ...Option) *Track {
	c := newConfig()
	c.props.Set("file", path)
	c.props.Set("height", bandHeight)
	c.props.Set("color", "#a6cee3")
	c.props.Set("number_of_bins", 700)
	c.props.Set("style", "fill")
	c.props.Set("max_value", "auto")
	c.props.Set("min_value", "auto")
	c.props.Set("show_data_range", true)
	c.props.Set("orientation", "normal")
	c.props.Set("fontsize", 12.0)
	c.apply(opts)
	if c.signal == nil {
		c.signal = datasource.NewBedGraphFile(path)
	}
	props := c.finish("BedGraph")
	return &Track{
		typ:      "BedGraph",
		props:    props,
		renderer: signalRenderer(c, path),
	}
}

// NewABCompartment builds an A/B compartment eigenvector track: a
// signal plot with sign-split fill colors.
func NewABCompartment(path string, opts ...Option) *Track {
	c := newConfig()
	c.props.Set("file", path)
	c.props.Set("height", bandHeight)
	c.props.Set("positive_color", "#ff9c9c")
	c.props.Set("negative_color", "#66ccff")
	c.props.Set("number_of_bins", 700)
	c.props.Set("max_value", "auto")
	c.props.Set("min_value", "auto")
	c.props.Set("show_data_range", true)
	c.props.Set("orientation", "normal")
	c.props.Set("fontsize", 12.0)
	c.apply(opts)
	props := c.finish("ABCompartment")
	r := signalRenderer(c, path)
	r.PositiveColor = props.String("positive_color")
	r.NegativeColor = props.String("negative_color")
	return &Track{
		typ:      "ABCompartment",
		props:    props,
		renderer: r,
	}
}

func (c *config) arcSource(path string) (datasource.ArcSource, error) {
	if c.arcs != nil {
		return c.arcs, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bedpe":
		return datasource.NewBEDPEFile(path), nil
	case ".pairs":
		return datasource.NewPairsFile(path), nil
	}
	return nil, errors.ExtensionError(path, ".bedpe", ".pairs")
}

func newArcsTrack(typ, path string, c *config) *Track {
	src, err := c.arcSource(path)
	if err != nil {
		// Unreachable from the typed constructors; the Arcs factory
		// rejects unknown extensions before construction.
		src = &datasource.MemoryArcs{}
	}
	props := c.finish(typ)
	return &Track{
		typ:   typ,
		props: props,
		renderer: tracks.Arcs{
			Source:      src,
			Color:       props.String("color"),
			Alpha:       props.Float("alpha"),
			LineWidth:   props.Float("line_width"),
			Orientation: props.String("orientation"),
		},
	}
}

func arcDefaults(c *config, path string) {
	c.props.Set("file", path)
	c.props.Set("height", bandHeight)
	c.props.Set("color", "#3297dc")
	c.props.Set("alpha", 0.8)
	c.props.Set("line_width", 0.0)
	c.props.Set("orientation", "normal")
}

// NewBEDPE builds an arc track backed by a BEDPE interaction file.
func NewBEDPE(path string, opts ...Option) *Track {
	c := newConfig()
	arcDefaults(c, path)
	c.apply(opts)
	return newArcsTrack("BEDPE", path, c)
}

// NewPairs builds an arc track backed by a 4DN pairs file.
func NewPairs(path string, opts ...Option) *Track {
	c := newConfig()
	arcDefaults(c, path)
	c.apply(opts)
	return newArcsTrack("Pairs", path, c)
}

// NewArcs dispatches on the file extension: .bedpe files become BEDPE
// tracks and .pairs files become Pairs tracks. Unknown extensions
// fail with an unsupported-extension error.
func NewArcs(path string, opts ...Option) (*Track, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bedpe":
		return NewBEDPE(path, opts...), nil
	case ".pairs":
		return NewPairs(path, opts...), nil
	}
	return nil, errors.ExtensionError(path, ".bedpe", ".pairs")
}

func (c *config) matrixSource(path string) datasource.MatrixSource {
	if c.matrix != nil {
		return c.matrix
	}
	return datasource.NewExternalMatrix(path)
}

func matrixDefaults(c *config, path string) {
	c.props.Set("file", path)
	c.props.Set("height", matrixHeight)
	c.props.Set("cmap", "YlOrRd")
	c.props.Set("bins", 200)
	c.props.Set("style", "triangular")
	c.props.Set("balance", true)
	c.props.Set("depth_ratio", "full")
	c.props.Set("color_bar", true)
	c.props.Set("transform", false)
	c.props.Set("orientation", "normal")
	c.props.Set("max_value", "auto")
	c.props.Set("min_value", "auto")
}

func newMatrixTrack(typ, path string, c *config) *Track {
	props := c.finish(typ)
	depth := 0.0
	if props.String("depth_ratio") != "full" {
		depth = props.Float("depth_ratio")
	}
	maxv := 0.0
	if props.String("max_value") != "auto" {
		maxv = props.Float("max_value")
	}
	transform := props.String("transform")
	if transform == BoolNo {
		transform = ""
	}
	return &Track{
		typ:   typ,
		props: props,
		renderer: tracks.Matrix{
			Source:     c.matrixSource(path),
			Cmap:       props.String("cmap"),
			Bins:       int(props.Float("bins")),
			Transform:  transform,
			Triangular: props.String("style") == "triangular",
			MaxValue:   maxv,
			DepthRatio: depth,
		},
	}
}

// NewCool builds a contact matrix track backed by a cooler file.
func NewCool(path string, opts ...Option) *Track {
	c := newConfig()
	matrixDefaults(c, path)
	c.apply(opts)
	return newMatrixTrack("Cool", path, c)
}

// NewDotHiC builds a contact matrix track backed by a .hic file.
func NewDotHiC(path string, opts ...Option) *Track {
	c := newConfig()
	matrixDefaults(c, path)
	c.apply(opts)
	return newMatrixTrack("DotHiC", path, c)
}

// NewHiCMat dispatches on the file extension: .cool and .mcool files
// become Cool tracks, .hic files become DotHiC tracks.
func NewHiCMat(path string, opts ...Option) (*Track, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cool", ".mcool":
		return NewCool(path, opts...), nil
	case ".hic":
		return NewDotHiC(path, opts...), nil
	}
	return nil, errors.ExtensionError(path, ".cool", ".mcool", ".hic")
}

// NewHiCDiff builds a differential contact track comparing two matrix
// tracks. Both operands must carry matrix renderers.
func NewHiCDiff(a, b *Track, opts ...Option) (*Track, error) {
	ma, ok := a.renderer.(tracks.Matrix)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTrack,
			"HiCDiff needs matrix tracks, got %s", a.Type())
	}
	mb, ok := b.renderer.(tracks.Matrix)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTrack,
			"HiCDiff needs matrix tracks, got %s", b.Type())
	}
	c := newConfig()
	c.props.Set("height", matrixHeight)
	c.props.Set("cmap", "bwr")
	c.apply(opts)
	props := c.finish("HiCDiff")
	return &Track{
		typ:   "HiCDiff",
		props: props,
		renderer: tracks.Compare{
			A:    ma.Source,
			B:    mb.Source,
			Cmap: props.String("cmap"),
		},
	}, nil
}
