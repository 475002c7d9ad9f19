// Package pipeline runs the load → render → convert pipeline shared by the
// CLI and the HTTP server.
//
// # Usage
//
// Create a Runner and execute the pipeline for a decoded chart:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	charts, err := runner.Load(ctx, "revenue.json")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, charts[0], pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Artifacts are cached per format under a key derived from the canonical
// JSON of the chart, so editing the chart file invalidates its entries.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render"
	"github.com/matzehuels/stackchart/pkg/sankey"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxScale bounds the PNG resolution multiplier.
	MaxScale = 8.0

	// MaxDimension bounds width and height overrides in pixels.
	MaxDimension = 10000.0
)

// Format constants re-exported for callers that only import pipeline.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatJSON = render.FormatJSON
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON and TOML so it can
// be read from a config file or a request.
type Options struct {
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Scale   float64  `json:"scale,omitempty" toml:"scale"`

	// Width and Height override the chart canvas when positive.
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"refresh"`

	Logger *log.Logger `json:"-" toml:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks formats and bounds. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %g outside (0, %g]", o.Scale, MaxScale)
	}
	for _, d := range []float64{o.Width, o.Height} {
		if d < 0 || d > MaxDimension {
			return errors.New(errors.ErrCodeInvalidConfig, "dimension %g outside [0, %g]", d, MaxDimension)
		}
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options of one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// LevelsOptions configures a sankey level computation. Width and Height
// override the chart canvas when positive.
type LevelsOptions struct {
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Refresh  bool    `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *LevelsOptions) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the rendered chart with defaults applied.
	Chart *chart.Chart

	// ChartHash is the content hash of the canonical chart.
	ChartHash string

	// Geometry is the computed render result. It is nil when every
	// artifact came from the cache.
	Geometry *render.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RenderTime  time.Duration
	ConvertTime time.Duration
	Bytes       int
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // all artifacts came from the cache
}

// LevelsResult is the output of Runner.Levels.
type LevelsResult struct {
	Layout   *sankey.Result   `json:"layout"`
	Columns  map[int][]string `json:"columns"`
	DOT      string           `json:"dot,omitempty"`
	CacheHit bool             `json:"-"`
}
