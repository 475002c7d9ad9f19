package chart

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/stack"
)

func TestValueJSON(t *testing.T) {
	var vs []Value
	if err := json.Unmarshal([]byte(`[1.5, null, "", "Q1", "42", -3]`), &vs); err != nil {
		t.Fatal(err)
	}
	want := []Value{
		{Num: 1.5, Valid: true},
		{},
		{},
		{Label: "Q1", Valid: true},
		{Num: 42, Text: "42", Valid: true},
		{Num: -3, Valid: true},
	}
	for i := range want {
		if vs[i] != want[i] {
			t.Errorf("vs[%d] = %+v, want %+v", i, vs[i], want[i])
		}
	}

	out, err := json.Marshal(vs)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out); got != `[1.5,null,null,"Q1","42",-3]` {
		t.Errorf("Marshal() = %s", got)
	}
}

func TestValueAccessors(t *testing.T) {
	if !math.IsNaN((Value{}).Float()) || (Value{}).OrZero() != 0 {
		t.Error("missing value should be NaN / zero")
	}
	if !math.IsNaN(Label("a").Float()) || !Label("a").IsLabel() {
		t.Error("label value should not be numeric")
	}
	if Number(math.Inf(1)).Valid {
		t.Error("Number(Inf) should be missing")
	}
	if got := Number(2.5).OrZero(); got != 2.5 {
		t.Errorf("OrZero() = %v", got)
	}
	if got := Numbers(1, math.NaN())[1]; got.Valid {
		t.Errorf("Numbers(NaN) = %+v", got)
	}
}

func TestValueCategoryLabel(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`"2021"`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Float() != 2021 {
		t.Errorf("Float() = %v, want 2021", v.Float())
	}
	if label, ok := v.CategoryLabel(); !ok || label != "2021" {
		t.Errorf("CategoryLabel() = %q, %v, want 2021", label, ok)
	}
	if label, ok := Label("east").CategoryLabel(); !ok || label != "east" {
		t.Errorf("Label.CategoryLabel() = %q, %v", label, ok)
	}
	if _, ok := Number(3).CategoryLabel(); ok {
		t.Error("unquoted number should not name a category")
	}
}

func TestValueTOML(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{int64(3), Value{Num: 3, Valid: true}},
		{2.5, Value{Num: 2.5, Valid: true}},
		{"", Value{}},
		{"east", Value{Label: "east", Valid: true}},
		{true, Value{Num: 1, Valid: true}},
	}
	for _, tt := range tests {
		var v Value
		if err := v.UnmarshalTOML(tt.in); err != nil {
			t.Fatalf("UnmarshalTOML(%v) error = %v", tt.in, err)
		}
		if v != tt.want {
			t.Errorf("UnmarshalTOML(%v) = %+v, want %+v", tt.in, v, tt.want)
		}
	}
	var v Value
	if err := v.UnmarshalTOML([]any{1}); err == nil {
		t.Error("UnmarshalTOML(array) error = nil")
	}
}

func TestSetDefaults(t *testing.T) {
	c := &Chart{
		Type:       TypeBar,
		Categories: []string{"a", "b"},
		Series:     []Series{{Values: Numbers(1, 2)}, {Name: "two", Values: Numbers(3, 4)}},
	}
	c.SetDefaults()

	if c.Width != DefaultWidth || c.Height != DefaultHeight || c.TickHint != 5 {
		t.Errorf("canvas = %vx%v ticks %d", c.Width, c.Height, c.TickHint)
	}
	if c.Legend != LegendRight {
		t.Errorf("Legend = %q, want right for two series", c.Legend)
	}
	if c.Margin.Right != DefaultMargin.Right+DefaultLegendWidth {
		t.Errorf("Margin.Right = %v", c.Margin.Right)
	}
	if s := c.Series[0]; s.Name != "Series 1" || s.XAxis != "x" || s.YAxis != "y" || s.Stack != stack.DefaultGroup {
		t.Errorf("series defaults = %+v", s)
	}

	x, ok := c.Axis("x")
	if !ok || x.Kind != axis.Category || len(x.Categories) != 2 {
		t.Errorf("x axis = %+v", x)
	}
	y, ok := c.Axis("y")
	if !ok || !y.BeginAtZero || y.TickHint != 5 {
		t.Errorf("y axis = %+v", y)
	}
	if c.Sankey.NodeWidth == 0 {
		t.Error("sankey defaults not applied")
	}

	plot := c.PlotArea()
	if plot.X != 70 || plot.Y != 50 || plot.Height != 490 {
		t.Errorf("PlotArea() = %+v", plot)
	}
}

func TestSetDefaultsKeepsDeclaredAxes(t *testing.T) {
	min := 10.0
	c := &Chart{
		Type:       TypeLine,
		Categories: []string{"a", "b", "c"},
		Axes: []axis.Declaration{
			{ID: "x", Kind: axis.Category},
			{ID: "y", Min: &min},
			{ID: "y2", Side: axis.Right},
		},
		Series: []Series{{YAxis: "y2", Values: Numbers(1, 2, 3)}},
	}
	c.SetDefaults()

	if len(c.Axes) != 3 {
		t.Fatalf("len(Axes) = %d, want 3", len(c.Axes))
	}
	if x, _ := c.Axis("x"); len(x.Categories) != 3 {
		t.Errorf("x categories = %v", x.Categories)
	}
	if y, _ := c.Axis("y"); y.BeginAtZero || *y.Min != 10 {
		t.Errorf("y = %+v", y)
	}
	if c.Legend != LegendNone {
		t.Errorf("Legend = %q, want none for one series", c.Legend)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSetDefaultsWaterfallAndDonut(t *testing.T) {
	w := &Chart{Type: TypeWaterfall, Steps: []Step{{Label: "open", Kind: stack.StepInitial, Value: 5}, {Label: "close", Kind: stack.StepTotal}}}
	w.SetDefaults()
	if x, _ := w.Axis("x"); len(x.Categories) != 2 || x.Categories[1] != "close" {
		t.Errorf("waterfall x = %+v", x)
	}

	d := &Chart{Type: TypeDonut, Series: []Series{{Values: Numbers(1, 2)}}}
	d.SetDefaults()
	if d.InnerRadius != DefaultInnerRadius {
		t.Errorf("InnerRadius = %v", d.InnerRadius)
	}
	if len(d.Axes) != 0 {
		t.Errorf("donut should have no axes, got %v", d.Axes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		chart Chart
		code  errors.Code
	}{
		{"unknown type", Chart{Type: "gauge"}, errors.ErrCodeInvalidChartType},
		{"negative plot", Chart{Type: TypeBar, Width: 50, Height: 50}, errors.ErrCodeInvalidPlotArea},
		{"unknown axis", Chart{Type: TypeLine, Series: []Series{{YAxis: "y9"}}}, errors.ErrCodeInvalidAxis},
		{"bad axis id", Chart{Type: TypeLine, Axes: []axis.Declaration{{ID: "z"}}}, errors.ErrCodeInvalidAxis},
		{"bad color", Chart{Type: TypePie, Palette: []string{"url(#x)"}}, errors.ErrCodeInvalidConfig},
		{"empty waterfall", Chart{Type: TypeWaterfall}, errors.ErrCodeInvalidInput},
		{"negative link", Chart{Type: TypeSankey, Links: []Link{{Source: "a", Target: "b", Value: -1}}}, errors.ErrCodeInvalidInput},
		{"bad legend", Chart{Type: TypeBar, Legend: "left"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.chart
			c.SetDefaults()
			err := c.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGraph(t *testing.T) {
	c := &Chart{
		Type:  TypeSankey,
		Nodes: []Node{{ID: "coal", Label: "Coal", Color: "#333333"}},
		Links: []Link{{Source: "coal", Target: "grid", Value: 4}, {Source: "grid", Target: "homes", Value: 3}},
	}
	g, err := c.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("graph = %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if n, _ := g.Node("coal"); n.DisplayLabel() != "Coal" {
		t.Errorf("label = %q", n.DisplayLabel())
	}

	c.Nodes = append(c.Nodes, Node{ID: "coal"})
	if _, err := c.Graph(); err == nil {
		t.Error("Graph() with duplicate node error = nil")
	}
}

func TestDecodeJSON(t *testing.T) {
	charts, err := Decode([]byte(`{"type":"bar","categories":["a","b"],"series":[{"name":"s","values":[1,null]}]}`), EncodingJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(charts) != 1 || charts[0].Type != TypeBar || charts[0].Series[0].Values[1].Valid {
		t.Errorf("charts = %+v", charts)
	}

	charts, err = Decode([]byte(`{"charts":[{"type":"pie","series":[{"values":[1]}]},{"type":"line"}]}`), EncodingJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(charts) != 2 || charts[1].Name != "line-2" {
		t.Errorf("multi decode = %d charts, second %q", len(charts), charts[1].Name)
	}
	if _, err := Find(charts, "line-2"); err != nil {
		t.Errorf("Find() error = %v", err)
	}
	if _, err := Find(charts, "nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Find(missing) error = %v", err)
	}

	if _, err := Decode([]byte(`{"type":`), EncodingJSON); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Decode(truncated) error = %v", err)
	}
}

func TestDecodeTOML(t *testing.T) {
	doc := `
type = "line"
categories = ["jan", "feb", "mar"]

[[axes]]
id = "y"
kind = "log"

[[series]]
name = "visits"
values = [10, "", 1000]
`
	charts, err := Decode([]byte(doc), EncodingTOML)
	if err != nil {
		t.Fatal(err)
	}
	c := charts[0]
	if y, _ := c.Axis("y"); y.Kind != axis.Log {
		t.Errorf("y kind = %v, want log", y.Kind)
	}
	if vs := c.Series[0].Values; len(vs) != 3 || vs[1].Valid || vs[2].Num != 1000 {
		t.Errorf("values = %v", vs)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waterfall.toml")
	doc := `
type = "waterfall"

[[steps]]
label = "open"
kind = "initial"
value = 100

[[steps]]
label = "close"
kind = "subtotal"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	charts, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if steps := charts[0].WaterfallSteps(); len(steps) != 2 || steps[1].Kind != stack.StepSubtotal {
		t.Errorf("steps = %+v", steps)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestEncodingFor(t *testing.T) {
	for path, want := range map[string]Encoding{
		"a.json": EncodingJSON, "b.TOML": EncodingTOML, "c": EncodingJSON, "d.tml": EncodingTOML,
	} {
		if got := EncodingFor(path); got != want {
			t.Errorf("EncodingFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		if got, err := ParseType(string(typ)); err != nil || got != typ {
			t.Errorf("ParseType(%q) = %q, %v", typ, got, err)
		}
	}
	if _, err := ParseType("gauge"); err == nil {
		t.Error("ParseType(gauge) error = nil")
	}
	if !TypeBar.Cartesian() || TypePie.Cartesian() {
		t.Error("Cartesian() mismatch")
	}
	if TypeRadar.StackOrder() != stack.Declaration || TypeArea.StackOrder() != stack.Reverse {
		t.Error("StackOrder() mismatch")
	}
}
