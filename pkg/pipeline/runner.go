package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/render"
	"github.com/matzehuels/stackchart/pkg/render/nodelink"
	"github.com/matzehuels/stackchart/pkg/sankey"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it does not
// store pipeline results, and multiple goroutines can use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads the charts of a JSON or TOML file.
func (r *Runner) Load(ctx context.Context, path string) ([]*chart.Chart, error) {
	observability.Pipeline().OnLoadStart(ctx, path)
	start := time.Now()

	charts, err := chart.Load(path)
	var kind string
	if len(charts) == 1 {
		kind = string(charts[0].Type)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, kind, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded charts", "file", path, "count", len(charts))
	return charts, nil
}

// Execute renders c and produces every requested format, reading and
// writing the cache per format.
func (r *Runner) Execute(ctx context.Context, c *chart.Chart, opts Options) (*Result, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil chart")
	}
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("chart", c.DisplayName())

	if opts.Width > 0 {
		c.Width = opts.Width
	}
	if opts.Height > 0 {
		c.Height = opts.Height
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	canonical, err := c.Canonical()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode chart")
	}

	result := &Result{
		Chart:     c,
		ChartHash: cache.Hash(canonical),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.ChartHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			for _, data := range artifacts {
				result.Stats.Bytes += len(data)
			}
			logger.Debug("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, string(c.Type))
	geom, err := render.Render(c)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, string(c.Type), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", c.DisplayName(), err)
	}
	result.Geometry = geom
	r.warn(logger, geom)

	logger.Info("rendered chart",
		"type", c.Type,
		"duration", result.Stats.RenderTime)

	convertStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.artifact(ctx, geom, format, opts.Scale)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		result.Stats.Bytes += len(data)

		key := r.Keyer.ArtifactKey(result.ChartHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	result.Stats.ConvertTime = time.Since(convertStart)

	return result, nil
}

// cachedArtifacts returns every requested format from the cache, or false
// if any of them is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, chartHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// artifact encodes one output format of a render result.
func (r *Runner) artifact(ctx context.Context, geom *render.Result, format string, scale float64) ([]byte, error) {
	observability.Pipeline().OnConvertStart(ctx, format)
	start := time.Now()

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(geom, "", "  ")
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInternal, err, "encode geometry")
		}
	default:
		data, err = render.Convert(ctx, geom.SVG, format, scale)
	}

	observability.Pipeline().OnConvertComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", format, err)
	}
	return data, nil
}

// warn logs conditions that do not fail a render.
func (r *Runner) warn(logger *log.Logger, geom *render.Result) {
	if geom.Skipped > 0 {
		logger.Warn("skipped values with unknown categories", "count", geom.Skipped)
	}
	if geom.Sankey != nil && geom.Sankey.Cyclic {
		logger.Warn("flow graph has cycles; levels are best effort")
	}
}

// flowGraph is the part of a chart that determines a sankey layout.
type flowGraph struct {
	Nodes  []chart.Node  `json:"nodes"`
	Links  []chart.Link  `json:"links"`
	Config sankey.Config `json:"config"`
}

// Levels computes the sankey layout of c's nodes and links along with the
// Graphviz preview of the flow graph. Results are cached.
func (r *Runner) Levels(ctx context.Context, c *chart.Chart, opts LevelsOptions) (*LevelsResult, error) {
	if c == nil || len(c.Links) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart has no links")
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()

	if opts.Width > 0 {
		c.Width = opts.Width
	}
	if opts.Height > 0 {
		c.Height = opts.Height
	}
	c.SetDefaults()

	data, err := json.Marshal(flowGraph{Nodes: c.Nodes, Links: c.Links, Config: c.Sankey})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode flow graph")
	}
	key := r.Keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		Width:       c.Width,
		Height:      c.Height,
		NodeWidth:   c.Sankey.NodeWidth,
		NodePadding: c.Sankey.NodePadding,
		Detailed:    opts.Detailed,
	})

	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached LevelsResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				cached.CacheHit = true
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	g, err := c.Graph()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build flow graph")
	}
	layout, err := sankey.Layout(g, c.PlotArea(), c.Sankey)
	if err != nil {
		return nil, err
	}
	if layout.Cyclic {
		opts.Logger.Warn("flow graph has cycles; levels are best effort", "chart", c.DisplayName())
	}

	columns := Columns(layout.Nodes)
	res := &LevelsResult{
		Layout:  layout,
		Columns: columns,
		DOT:     nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Columns: columns}),
	}

	if raw, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, raw, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(raw))
		}
	}
	return res, nil
}

// Columns groups laid out nodes by level, top to bottom.
func Columns(nodes []sankey.Node) map[int][]string {
	byLevel := make(map[int][]sankey.Node)
	for _, n := range nodes {
		byLevel[n.Level] = append(byLevel[n.Level], n)
	}
	cols := make(map[int][]string, len(byLevel))
	for lv, ns := range byLevel {
		slices.SortFunc(ns, func(a, b sankey.Node) int { return a.Index - b.Index })
		ids := make([]string, len(ns))
		for i, n := range ns {
			ids[i] = n.ID
		}
		cols[lv] = ids
	}
	return cols
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
