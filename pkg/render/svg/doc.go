// Package svg holds the primitive shape descriptors chart renderers emit
// and serializes them to SVG markup.
//
// Renderers never write markup directly. They add [Rect], [Circle],
// [Line], [Path], [Polygon], [Polyline], [Text] and [Group] values to a
// [Document], which writes them in insertion order:
//
//	doc := svg.New(800, 600)
//	doc.Add(svg.Rect{X: 10, Y: 10, W: 50, H: 80, Style: svg.Style{Fill: "#4e79a7"}})
//	out := doc.Bytes()
//
// # Gradients
//
// [Document.Gradient] registers a linear gradient and returns its fill
// reference. Identical gradients share one definition. The registry
// belongs to the document, so ids restart with every render and two
// documents built concurrently never share state.
package svg
