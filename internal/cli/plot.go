package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lociview/lociview/pkg/pipeline"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output   string   // output file base path
	grange   string   // genome range to plot
	formats  []string // output formats: svg, png, pdf
	noCache  bool     // disable the artifact cache
	refresh  bool     // recompute even when cached
	pngScale float64  // raster scale for PNG output
}

// plotCommand creates the plot command for rendering a frame layout.
func (c *CLI) plotCommand() *cobra.Command {
	var formatsStr string
	opts := plotOpts{pngScale: 1}

	cmd := &cobra.Command{
		Use:   "plot [layout.toml]",
		Short: "Plot a track frame for a genome range",
		Long: `Plot loads a TOML layout file, builds its track frame, and renders
the given genome range. Ranges use the chrom:start-end form, e.g.
chr9:4000000-6000000 (commas in positions are accepted).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.grange, "range", "r", "", "genome range to plot (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: layout file name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster scale factor for PNG output")
	_ = cmd.MarkFlagRequired("range")

	return cmd
}

func (c *CLI) runPlot(ctx context.Context, layoutPath string, opts *plotOpts) error {
	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Plotting %s...", opts.grange))
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: layoutPath,
		Range1:     opts.grange,
		Formats:    opts.formats,
		PNGScale:   opts.pngScale,
		Refresh:    opts.refresh,
	})
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Plot failed: %v", err))
		return err
	}
	spin.Stop()

	paths, err := writeArtifacts(result, opts.output, layoutPath, opts.formats)
	if err != nil {
		return err
	}

	printSuccess("Plotted %s", opts.grange)
	printPlotStats(result.Stats.TrackCount, opts.grange, result.CacheInfo.ArtifactHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each rendered format next to the layout file
// (or under the explicit output base) and returns the written paths.
func writeArtifacts(result *pipeline.Result, output, layoutPath string, formats []string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, layoutPath, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
