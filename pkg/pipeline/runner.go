package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lociview/lociview/pkg/cache"
	"github.com/lociview/lociview/pkg/config"
	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/render"
	"github.com/lociview/lociview/pkg/render/svg"
	"github.com/lociview/lociview/pkg/track"
)

// Runner executes pipeline runs with artifact caching. It is
// stateless apart from the cache and logger, so one Runner can serve
// concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil
// logger discards stage logs.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Keyer: cache.NewKeyer(), Logger: logger}
}

// Execute runs the complete load → build → plot → convert pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	cfg, hash, err := r.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Artifacts:  make(map[string][]byte),
		ConfigHash: hash,
	}

	if !opts.Refresh && r.lookupArtifacts(ctx, result, opts) {
		logger.Info("served from cache", "formats", opts.Formats)
		result.CacheInfo.ArtifactHit = true
		return result, nil
	}

	fig, err := r.plot(ctx, cfg, &opts, result, logger)
	if err != nil {
		return nil, err
	}

	convertStart := time.Now()
	if err := r.convert(fig, opts, result); err != nil {
		return nil, err
	}
	result.Stats.ConvertTime = time.Since(convertStart)
	logger.Info("converted artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ConvertTime)

	r.storeArtifacts(ctx, result, opts)
	return result, nil
}

// loadConfig resolves the layout and a stable hash identifying it.
func (r *Runner) loadConfig(opts Options) (*config.Config, string, error) {
	if opts.Config != nil {
		return opts.Config, cache.Hash(fmt.Appendf(nil, "%+v", *opts.Config)), nil
	}
	raw, err := os.ReadFile(opts.ConfigPath)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err,
			"reading %s", opts.ConfigPath)
	}
	cfg, err := config.Parse(string(raw))
	if err != nil {
		return nil, "", err
	}
	return cfg, cache.Hash(raw), nil
}

// plot builds the frame or joint view and renders the SVG figure.
func (r *Runner) plot(ctx context.Context, cfg *config.Config, opts *Options, result *Result, logger *log.Logger) (*svg.Figure, error) {
	buildOpts := []track.Option{
		track.WithRegistry(track.NewRegistry()),
		track.WithCache(r.Cache),
	}
	rcOpts := []render.ContextOption{render.WithLogger(logger)}
	if opts.TempDir != "" {
		rcOpts = append(rcOpts, render.WithTempDir(opts.TempDir))
	}
	rc := render.NewContext(rcOpts...)

	buildStart := time.Now()
	var fig *svg.Figure
	if opts.Joint {
		view, err := cfg.BuildJoint(buildOpts...)
		if err != nil {
			return nil, err
		}
		result.Stats.BuildTime = time.Since(buildStart)

		plotStart := time.Now()
		fig, err = view.Plot(ctx, rc, opts.gr1, opts.gr2)
		if err != nil {
			return nil, err
		}
		result.Stats.PlotTime = time.Since(plotStart)
	} else {
		frame, err := cfg.BuildFrame(buildOpts...)
		if err != nil {
			return nil, err
		}
		result.Stats.BuildTime = time.Since(buildStart)
		result.Stats.TrackCount = len(frame.Tracks())

		plotStart := time.Now()
		fig, err = frame.Plot(ctx, rc, opts.gr1)
		if err != nil {
			return nil, err
		}
		result.Stats.PlotTime = time.Since(plotStart)
	}
	logger.Info("plotted figure",
		"range", opts.gr1.String(),
		"build", result.Stats.BuildTime,
		"plot", result.Stats.PlotTime)
	return fig, nil
}

// convert produces each requested format from the SVG figure.
func (r *Runner) convert(fig *svg.Figure, opts Options, result *Result) error {
	svgBytes := fig.Bytes()
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			result.Artifacts[FormatSVG] = svgBytes
		case FormatPNG:
			data, err := render.ToPNG(svgBytes, opts.PNGScale)
			if err != nil {
				return err
			}
			result.Artifacts[FormatPNG] = data
		case FormatPDF:
			data, err := render.ToPDF(svgBytes)
			if err != nil {
				return err
			}
			result.Artifacts[FormatPDF] = data
		}
	}
	return nil
}

func (r *Runner) lookupArtifacts(ctx context.Context, result *Result, opts Options) bool {
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.ConfigHash, opts.rangeKey(), format)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return false
		}
		result.Artifacts[format] = data
	}
	return true
}

func (r *Runner) storeArtifacts(ctx context.Context, result *Result, opts Options) {
	for format, data := range result.Artifacts {
		key := r.Keyer.ArtifactKey(result.ConfigHash, opts.rangeKey(), format)
		_ = r.Cache.Set(ctx, key, data, cache.DefaultTTL)
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
