// Package nodelink renders sankey flow graphs as node-link diagrams.
//
// # Overview
//
// The diagram is a preview of the graph a sankey chart is laid out from:
// every node is a box, every link an arrow whose width scales with its
// value, and nodes of the same level share a Graphviz rank. It is handy
// for checking level assignment on graphs too dense to read as a sankey.
//
// # Usage
//
//	sankey.AssignLevels(g)
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
