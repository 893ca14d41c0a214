package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lociview/lociview/pkg/pipeline"
)

// jointOpts holds the command-line flags for the joint command.
type jointOpts struct {
	output   string
	range1   string
	range2   string
	formats  []string
	noCache  bool
	refresh  bool
	pngScale float64
}

// jointCommand creates the joint command for rendering a joint view.
func (c *CLI) jointCommand() *cobra.Command {
	var formatsStr string
	opts := jointOpts{pngScale: 1}

	cmd := &cobra.Command{
		Use:   "joint [layout.toml]",
		Short: "Plot a joint contact view for one or two genome ranges",
		Long: `Joint loads a TOML layout file with a [joint] table and renders its
center contact plot with the peripheral frames. With a single range
the view plots the range against itself; --range2 selects a second
range for off-diagonal views.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runJoint(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.range1, "range", "r", "", "first genome range (required)")
	cmd.Flags().StringVar(&opts.range2, "range2", "", "second genome range (default: same as --range)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: layout file name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster scale factor for PNG output")
	_ = cmd.MarkFlagRequired("range")

	return cmd
}

func (c *CLI) runJoint(ctx context.Context, layoutPath string, opts *jointOpts) error {
	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	label := opts.range1
	if opts.range2 != "" {
		label = fmt.Sprintf("%s x %s", opts.range1, opts.range2)
	}
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Plotting %s...", label))
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: layoutPath,
		Range1:     opts.range1,
		Range2:     opts.range2,
		Joint:      true,
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

	printSuccess("Plotted %s", label)
	printPlotStats(0, label, result.CacheInfo.ArtifactHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
