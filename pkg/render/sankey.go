package render

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/svg"
	"github.com/matzehuels/stackchart/pkg/sankey"
)

const linkOpacity = 0.4

// renderSankey lays out the chart's flow graph and draws links under
// nodes. Labels sit right of their node, or left of it in the last column.
// Cyclic input is drawn best effort and flagged in the result.
func renderSankey(f *frame) error {
	c := f.chart
	g, err := c.Graph()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "sankey chart %q", c.DisplayName())
	}
	res, err := sankey.Layout(g, f.plot, c.Sankey)
	if err != nil {
		return err
	}
	f.result.Sankey = res

	colors := make(map[string]string, len(res.Nodes))
	last := 0
	for i, n := range res.Nodes {
		colors[n.ID] = n.Color
		if n.Color == "" {
			colors[n.ID] = c.Color(i)
		}
		last = max(last, n.Level)
	}

	links := &svg.Group{Class: "links"}
	for _, l := range res.Links {
		if l.Value <= 0 {
			continue
		}
		links.Add(svg.Path{
			D:     l.Path(),
			Title: fmt.Sprintf("%s → %s: %s", l.Source, l.Target, strconv.FormatFloat(l.Value, 'g', -1, 64)),
			Style: svg.Style{Fill: colors[l.Source], FillOpacity: linkOpacity},
		})
	}
	f.doc.Add(links)

	nodes := &svg.Group{Class: "nodes"}
	for _, n := range res.Nodes {
		nodes.Add(svg.Rect{
			X: n.X, Y: n.Y, W: n.Width, H: n.Height,
			Title: fmt.Sprintf("%s: %s", n.Label, strconv.FormatFloat(n.Value, 'g', -1, 64)),
			Style: svg.Style{Fill: colors[n.ID]},
		})
		x, anchor := n.Right()+6, svg.AnchorStart
		if n.Level == last && last > 0 {
			x, anchor = n.X-6, svg.AnchorEnd
		}
		nodes.Add(svg.Text{
			X: x, Y: n.CenterY(),
			Content: n.Label,
			Size:    labelFontSize,
			Anchor:  anchor,
			Style:   svg.Style{Fill: labelColor},
		})
	}
	f.doc.Add(nodes)
	return nil
}
