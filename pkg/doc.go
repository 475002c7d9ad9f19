// Package pkg provides the core libraries for Stackchart chart rendering.
//
// # Overview
//
// Stackchart turns declarative chart descriptions (JSON or TOML) into SVG
// geometry. The pkg directory is organized into three areas:
//
//  1. Geometry - [scale], [axis], [stack], [dag] and [sankey] compute ranges,
//     ticks, pixel mappings, stacked bands and flow layouts
//  2. Rendering - [chart] declares charts, [render] draws them through
//     [render/svg], [render/nodelink] draws flow graphs with Graphviz
//  3. Infrastructure - [pipeline], [cache], [server], [observability],
//     [errors] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	chart file (JSON / TOML)
//	         ↓
//	    [chart] package (decode, defaults, validation)
//	         ↓
//	    [scale] + [axis] + [stack] / [sankey] (geometry)
//	         ↓
//	    [render] package (SVG document)
//	         ↓
//	    SVG/JSON/PNG/PDF output, cached by [pipeline]
//
// # Quick Start
//
//	charts, _ := chart.Load("sales.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, charts[0], pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("sales.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// Compute a value axis without rendering:
//
//	sc := scale.Nice(3, 97, 5, scale.Options{})
//	fmt.Println(sc.Min, sc.Max, sc.Ticks()) // 0 100 [0 20 40 60 80 100]
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/sankey/...   # Specific package
//	go test -run Example ./... # Examples only
//
// [scale]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/scale
// [axis]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/axis
// [stack]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/stack
// [dag]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/dag
// [sankey]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/sankey
// [chart]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart
// [render]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/buildinfo
package pkg
