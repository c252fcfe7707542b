package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treeviz/pkg/bst"
)

// DOTOptions configures node-link diagram generation.
type DOTOptions struct {
	// Detailed includes the depth of each node in its label.
	// When false, only the value is shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered with [RenderDOTSVG] or
// [RenderDOTPNG], or processed with external Graphviz tools.
//
// Values are unique within a tree, so they double as node identifiers.
// Identifiers are quoted: negative values would otherwise produce IDs
// like n-5, which Graphviz rejects.
func ToDOT(t *bst.Tree, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph bst {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontname=\"monospace\", fixedsize=true, width=0.5];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	var walk func(n *bst.Tree, depth int)
	walk = func(n *bst.Tree, depth int) {
		if n.IsEmpty() {
			return
		}
		if opts.Detailed {
			fmt.Fprintf(&buf, "  \"n%d\" [label=\"%d\\nd%d\"];\n", n.Value(), n.Value(), depth)
		} else {
			fmt.Fprintf(&buf, "  \"n%d\" [label=\"%d\"];\n", n.Value(), n.Value())
		}
		if !n.Left().IsEmpty() {
			fmt.Fprintf(&buf, "  \"n%d\" -> \"n%d\";\n", n.Value(), n.Left().Value())
		}
		if !n.Right().IsEmpty() {
			fmt.Fprintf(&buf, "  \"n%d\" -> \"n%d\";\n", n.Value(), n.Right().Value())
		}
		walk(n.Left(), depth+1)
		walk(n.Right(), depth+1)
	}
	walk(t, 0)

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders DOT source to SVG using the in-process Graphviz engine.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDOTPNG renders DOT source to PNG by rasterizing the Graphviz SVG.
func RenderDOTPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderDOTSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
