// Package pipeline runs the load → build → plot → convert flow shared
// by the CLI and the HTTP server, with artifact caching.
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lociview/lociview/pkg/config"
	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/genome"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

var validFormats = []string{FormatSVG, FormatPNG, FormatPDF}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	for _, f := range validFormats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeUnsupportedFormat,
		"unsupported format %q, accepted: svg, png, pdf", format)
}

// ValidateFormats checks a format list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures a pipeline run.
type Options struct {
	// ConfigPath is the layout file to load. Ignored when Config is
	// set.
	ConfigPath string

	// Config is a pre-parsed layout, used instead of ConfigPath.
	Config *config.Config

	// Range1 is the genome range to plot, e.g. "chr9:4000000-6000000".
	Range1 string

	// Range2 is the second range for joint views. Empty means plot
	// Range1 against itself.
	Range2 string

	// Joint selects the config's joint table instead of its frame.
	Joint bool

	// Formats lists the artifacts to produce. Defaults to ["svg"].
	Formats []string

	// PNGScale is the raster scale factor for PNG output.
	PNGScale float64

	// Refresh skips the artifact cache lookup and recomputes.
	Refresh bool

	// TempDir holds intermediate SVG panels. Defaults to the system
	// temp dir.
	TempDir string

	// Logger receives stage logs. Defaults to the runner's logger.
	Logger *log.Logger

	gr1, gr2 genome.Range
}

// ValidateAndSetDefaults checks the options and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == nil && o.ConfigPath == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "a config or config path is required")
	}
	if o.Range1 == "" {
		return errors.New(errors.ErrCodeInvalidRange, "a genome range is required")
	}
	gr1, err := genome.ParseRange(o.Range1)
	if err != nil {
		return err
	}
	o.gr1 = gr1
	if o.Range2 != "" {
		gr2, err := genome.ParseRange(o.Range2)
		if err != nil {
			return err
		}
		o.gr2 = gr2
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale == 0 {
		o.PNGScale = 1
	}
	return nil
}

// rangeKey is the genome-range part of artifact cache keys.
func (o *Options) rangeKey() string {
	key := o.gr1.String()
	if o.Joint {
		gr2 := o.gr2
		if gr2.IsZero() {
			gr2 = o.gr1
		}
		key = fmt.Sprintf("%s|%s", key, gr2.String())
	}
	return key
}

// Result holds the produced artifacts and run metadata.
type Result struct {
	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte

	// ConfigHash identifies the layout that produced the artifacts.
	ConfigHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records per-stage timings.
type Stats struct {
	BuildTime   time.Duration
	PlotTime    time.Duration
	ConvertTime time.Duration
	TrackCount  int
}

// CacheInfo reports whether the run was served from cache.
type CacheInfo struct {
	ArtifactHit bool
}
