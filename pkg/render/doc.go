// Package render turns a [chart.Chart] into SVG markup and the geometry it
// was drawn from.
//
// # Overview
//
// [Render] resolves the chart's defaults, prepares its axes, runs the
// renderer registered for the chart type and serializes the resulting
// shapes:
//
//	res, err := render.Render(c)
//	os.WriteFile("chart.svg", res.SVG, 0o644)
//
// Every renderer consumes coordinates from package axis, stacks through
// package stack and lays out flows through package sankey. None of them
// writes markup; they add shape descriptors to an [svg.Document].
//
// # Geometry
//
// [Result] carries the computed axes, stack bands, pie slices, waterfall
// bars and sankey layout next to the SVG, so callers can use the numbers
// without parsing markup. It marshals to JSON without the SVG.
//
// # Unknown categories
//
// A label value on a category axis that is not one of its categories is
// skipped and counted in [Result.Skipped]. It is never drawn at slot 0.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). The [nodelink] subpackage renders a Graphviz preview of
// a sankey flow graph.
//
// [nodelink]: github.com/matzehuels/stackchart/pkg/render/nodelink
package render
