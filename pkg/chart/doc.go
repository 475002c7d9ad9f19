// Package chart defines the declarative chart description consumed by the
// renderers and resolves its defaults.
//
// A chart file is JSON or TOML and holds either one chart or a "charts"
// list:
//
//	{
//	  "type": "bar",
//	  "stacked": true,
//	  "categories": ["Q1", "Q2", "Q3"],
//	  "series": [
//	    {"name": "north", "values": [10, null, 4]},
//	    {"name": "south", "values": [-3, 5, 8]}
//	  ]
//	}
//
// [Chart.SetDefaults] is the single place optional fields are resolved:
// canvas size, margins, tick hint, palette, legend, axis declarations and
// the sankey spacing. Renderers never check for presence themselves.
// [Chart.Validate] then reports unrecoverable input, such as an unknown
// chart type or a negative plot area, as coded errors from package errors.
//
// Series values are [Value]s: numbers, category labels or missing. JSON
// null and the empty string are missing; TOML has no null, so use "".
package chart
