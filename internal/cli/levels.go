package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/render/nodelink"
)

// levelsOpts holds the flags of the levels command.
type levelsOpts struct {
	chart    string
	output   string
	detailed bool
	scale    float64
	refresh  bool
	noCache  bool
}

// graphFormats are the --output extensions levels can write.
var graphFormats = []string{"dot", "svg", "pdf", "png"}

// levelsCommand creates the levels command.
func (c *CLI) levelsCommand() *cobra.Command {
	opts := &levelsOpts{}

	cmd := &cobra.Command{
		Use:   "levels [chart.json|chart.toml]",
		Short: "Show the sankey column of every node",
		Long: `Show how a flow chart's nodes are assigned to sankey columns.

Each node sits one column right of its deepest predecessor. With --output
the flow graph is also drawn by Graphviz, one rank per column; the file
extension picks the format (.dot, .svg, .pdf or .png).`,
		Example: `  stackchart levels energy.toml
  stackchart levels energy.toml -o energy-graph.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" {
				if _, err := graphFormat(opts.output); err != nil {
					return err
				}
			}
			return c.runLevels(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.chart, "chart", "", "use the chart with this name (default: first chart with links)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "also write the flow graph (.dot, .svg, .pdf, .png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node values in the graph")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLevels(ctx context.Context, input string, opts *levelsOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	charts, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	ch, err := flowChart(charts, opts.chart)
	if err != nil {
		return err
	}

	res, err := runner.Levels(ctx, ch, pipeline.LevelsOptions{
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Levels of %s", StyleValue.Render(ch.DisplayName()))
	fmt.Println(levelsTable(res.Columns))
	printStats([]string{
		fmt.Sprintf("%d nodes", len(res.Layout.Nodes)),
		fmt.Sprintf("%d links", len(res.Layout.Links)),
		fmt.Sprintf("%d crossings", res.Layout.Crossings),
	}, res.CacheHit)
	if res.Layout.Cyclic {
		printWarning("flow graph has cycles; levels are best effort")
	}

	if opts.output == "" {
		return nil
	}
	data, err := renderGraph(ctx, res.DOT, opts.output, opts.scale)
	if err != nil {
		return err
	}
	if err := writeFile(opts.output, data); err != nil {
		return err
	}
	printFile(opts.output)
	return nil
}

// flowChart returns the named chart, or the first one with links.
func flowChart(charts []*chart.Chart, name string) (*chart.Chart, error) {
	if name != "" {
		return chart.Find(charts, name)
	}
	for _, ch := range charts {
		if len(ch.Links) > 0 {
			return ch, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no chart with links")
}

// levelsTable renders one row per column, nodes top to bottom.
func levelsTable(columns map[int][]string) string {
	levels := make([]int, 0, len(columns))
	for lv := range columns {
		levels = append(levels, lv)
	}
	slices.Sort(levels)

	t := newTable("Level", "Nodes")
	for _, lv := range levels {
		t.Row(strconv.Itoa(lv), strings.Join(columns[lv], ", "))
	}
	return t.Render()
}

func graphFormat(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !slices.Contains(graphFormats, ext) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (must be one of: %s)", ext, strings.Join(graphFormats, ", "))
	}
	return ext, nil
}

// renderGraph draws dot in the format named by path's extension.
func renderGraph(ctx context.Context, dot, path string, scale float64) ([]byte, error) {
	format, err := graphFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case "svg":
		return nodelink.RenderSVG(ctx, dot)
	case "pdf":
		return nodelink.RenderPDF(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, scale)
	}
	return []byte(dot), nil
}
