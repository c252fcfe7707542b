package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treeviz/pkg/layout"
)

// NodeRadius is the radius of a node circle in user units.
const NodeRadius = 12.0

// conflictRadius is the radius of the emphasized marker drawn around a
// conflicting coordinate, slightly larger than the node it rings.
const conflictRadius = NodeRadius + 5

// SVGOption configures the SVG sink.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     Style
	conflicts []layout.Coord
	labels    bool
}

// WithStyle selects the color scheme.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithConflicts highlights the given coordinate cells with an emphasized
// marker. Meaningful for grid layouts only; radial layouts have none.
func WithConflicts(cs []layout.Coord) SVGOption {
	return func(r *svgRenderer) { r.conflicts = cs }
}

// WithoutLabels suppresses the value labels inside the node circles.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// SVG renders a layout as an SVG document.
//
// Draw order is edges, then nodes, then labels, then conflict markers, so
// lines never cross text and markers always sit on top.
func SVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: StyleLight, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", l.Width, l.Height, r.style.Background)
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f, %.2f)">`+"\n", l.OffsetX, l.OffsetY)

	for _, e := range l.Edges {
		fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
			e.From.X, e.From.Y, e.To.X, e.To.Y, r.style.EdgeStroke)
	}

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, `    <circle class="node" cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			n.X, n.Y, NodeRadius, r.style.NodeFill, r.style.NodeStroke)
	}

	if r.labels {
		for _, n := range l.Nodes {
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="monospace" font-size="11" fill="%s">%d</text>`+"\n",
				n.X, n.Y, r.style.Text, n.Value)
		}
	}

	for _, c := range r.conflicts {
		p := conflictPoint(l.Strategy, c)
		fmt.Fprintf(&buf, `    <circle class="conflict" cx="%.2f" cy="%.2f" r="%.1f" fill="none" stroke="%s" stroke-width="2.5" stroke-dasharray="4 3"/>`+"\n",
			p.X, p.Y, conflictRadius, r.style.Conflict)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// conflictPoint maps a conflict cell back to its screen position using the
// layout's own placement function.
func conflictPoint(strategy string, c layout.Coord) layout.Point {
	if strategy == layout.StrategyRadial {
		return layout.RadialPoint(c.Depth, c.Slot)
	}
	return layout.GridPoint(c.Depth, c.Slot)
}
