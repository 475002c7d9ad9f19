package sankey

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Default layout parameters.
const (
	DefaultNodeWidth     = 20.0
	DefaultNodePadding   = 10.0
	DefaultMinNodeHeight = 2.0
	DefaultCurvature     = 0.5
	DefaultPasses        = 8
)

// Ordering selects how nodes are ordered within a column.
type Ordering int

const (
	// OrderDeclaration keeps nodes in insertion order.
	OrderDeclaration Ordering = iota
	// OrderBarycenter sorts nodes by the mean position of their neighbors
	// in alternating sweeps and keeps the ordering with the fewest link
	// crossings.
	OrderBarycenter
	// OrderExhaustive refines the barycenter ordering by trying every
	// permutation of each column of at most MaxExhaustiveColumn nodes.
	OrderExhaustive
)

// MaxExhaustiveColumn bounds the columns OrderExhaustive permutes; 7! is
// 5040 candidate orders.
const MaxExhaustiveColumn = 7

func (o Ordering) String() string {
	switch o {
	case OrderBarycenter:
		return "barycenter"
	case OrderExhaustive:
		return "exhaustive"
	}
	return "declaration"
}

// ParseOrdering parses "declaration", "barycenter" or "exhaustive"; the
// empty string yields OrderDeclaration.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "declaration":
		return OrderDeclaration, nil
	case "barycenter":
		return OrderBarycenter, nil
	case "exhaustive":
		return OrderExhaustive, nil
	}
	return OrderDeclaration, fmt.Errorf("unknown node ordering %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Ordering) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Ordering) UnmarshalText(b []byte) error {
	v, err := ParseOrdering(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Config holds the spacing parameters of a sankey layout. Zero fields are
// replaced by defaults in SetDefaults, except Curvature: a nil Curvature
// takes DefaultCurvature and an explicit 0 draws straight ribbons.
type Config struct {
	NodeWidth     float64  `json:"node_width,omitempty" toml:"node_width"`
	NodePadding   float64  `json:"node_padding,omitempty" toml:"node_padding"`
	LevelPadding  float64  `json:"level_padding,omitempty" toml:"level_padding"` // 0 spreads columns over the plot width
	MinNodeHeight float64  `json:"min_node_height,omitempty" toml:"min_node_height"`
	MaxNodeHeight float64  `json:"max_node_height,omitempty" toml:"max_node_height"` // 0 means unbounded
	Curvature     *float64 `json:"curvature,omitempty" toml:"curvature"`
	Ordering      Ordering `json:"ordering,omitempty" toml:"ordering"`
	Passes        int      `json:"passes,omitempty" toml:"passes"`
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.NodeWidth <= 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodePadding <= 0 {
		c.NodePadding = DefaultNodePadding
	}
	if c.MinNodeHeight <= 0 {
		c.MinNodeHeight = DefaultMinNodeHeight
	}
	if c.Curvature == nil {
		v := DefaultCurvature
		c.Curvature = &v
	}
	if c.Passes <= 0 {
		c.Passes = DefaultPasses
	}
}

// Bend returns the curvature, or DefaultCurvature when none is set.
func (c Config) Bend() float64 {
	if c.Curvature == nil {
		return DefaultCurvature
	}
	return *c.Curvature
}

// Validate rejects inconsistent parameters.
func (c Config) Validate() error {
	if c.MaxNodeHeight > 0 && c.MaxNodeHeight < c.MinNodeHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "max node height %g below min node height %g", c.MaxNodeHeight, c.MinNodeHeight)
	}
	if c.Curvature != nil && (*c.Curvature < 0 || *c.Curvature > 1) {
		return errors.New(errors.ErrCodeInvalidConfig, "curvature %g outside [0, 1]", *c.Curvature)
	}
	if c.LevelPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "negative level padding %g", c.LevelPadding)
	}
	return nil
}
