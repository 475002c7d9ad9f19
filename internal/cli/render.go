package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string
	formats string
	chart   string
	pick    bool
	width   float64
	height  float64
	scale   float64
	refresh bool
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [charts.json|charts.toml]",
		Short: "Render charts to SVG, JSON, PNG or PDF",
		Long: `Render charts described in a JSON or TOML file.

A file holds one chart or a list under "charts". Every chart is rendered
unless --chart or --pick selects one. Output files are named after the
input (or --output) with the chart name and format appended when more than
one file is written.

PNG and PDF need rsvg-convert on the PATH.`,
		Example: `  stackchart render sales.toml
  stackchart render sales.toml -f svg,png --scale 3
  stackchart render dashboard.json --chart revenue -o revenue.svg
  stackchart render dashboard.json --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single file) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.chart, "chart", "", "render only the chart with this name")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the chart interactively")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override the canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "override the canvas height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.MarkFlagsMutuallyExclusive("chart", "pick")

	return cmd
}

// runRender loads input, selects charts and writes one file per chart and format.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	charts, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	charts, err = selectCharts(charts, opts.chart, opts.pick)
	if err != nil {
		return err
	}
	if len(charts) == 0 {
		printDetail("No chart selected")
		return nil
	}

	prog := newProgress(c.Logger)
	multi := len(charts) > 1 || len(formats) > 1
	base := basePath(opts.output, input)

	for _, ch := range charts {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", ch.DisplayName()))
		spinner.Start()

		res, err := runner.Execute(ctx, ch, pipeline.Options{
			Formats: formats,
			Scale:   opts.scale,
			Width:   opts.width,
			Height:  opts.height,
			Refresh: opts.refresh,
			Logger:  c.Logger,
		})
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Render %s failed", ch.DisplayName()))
			return err
		}
		spinner.Stop()

		printSuccess("Rendered %s", StyleValue.Render(ch.DisplayName()))
		for _, format := range formats {
			path := outputPath(opts.output, base, ch, format, len(charts) > 1, multi)
			if err := writeFile(path, res.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
		printStats(renderStats(res), res.CacheInfo.RenderHit)
		if res.Geometry != nil && res.Geometry.Skipped > 0 {
			printWarning("%d values skipped (unknown categories or non-finite)", res.Geometry.Skipped)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d chart(s)", len(charts)))
	return nil
}

// selectCharts narrows charts to the named one, the picked one, or all.
func selectCharts(charts []*chart.Chart, name string, pick bool) ([]*chart.Chart, error) {
	switch {
	case name != "":
		ch, err := chart.Find(charts, name)
		if err != nil {
			return nil, err
		}
		return []*chart.Chart{ch}, nil
	case pick && len(charts) > 1:
		ch, err := pickChart(charts)
		if err != nil || ch == nil {
			return nil, err
		}
		return []*chart.Chart{ch}, nil
	}
	return charts, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// slug turns a chart name into a file name fragment.
func slug(s string) string {
	s = strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "chart"
	}
	return s
}

// outputPath picks the file for one artifact. A lone artifact goes to
// output verbatim when given; otherwise the chart slug (with several charts)
// and the format extension are appended to base.
func outputPath(output, base string, c *chart.Chart, format string, manyCharts, multi bool) string {
	if !multi && output != "" {
		return output
	}
	if manyCharts {
		base += "_" + slug(c.DisplayName())
	}
	return base + "." + format
}

func renderStats(res *pipeline.Result) []string {
	parts := []string{string(res.Chart.Type)}
	if res.Geometry != nil {
		parts = append(parts, fmt.Sprintf("%gx%g", res.Geometry.Width, res.Geometry.Height))
	}
	parts = append(parts, humanBytes(res.Stats.Bytes))
	return parts
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// writeFile writes data, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
