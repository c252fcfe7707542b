// Package render turns computed layouts into drawable artifacts.
//
// # Overview
//
// The primary sink is SVG: one circle with a centered value label per node,
// one straight line per edge, and an emphasized marker per conflicting
// coordinate. PNG and PDF are produced by converting the SVG with
// rsvg-convert.
//
// A third path renders the tree as a traditional node-link diagram through
// Graphviz: [ToDOT] produces DOT source and [RenderDOTSVG] /
// [RenderDOTPNG] rasterize it in-process.
//
// # Usage
//
//	l, _ := layout.Build(tree, layout.StrategyGrid)
//	svg := render.SVG(l, render.WithConflicts(layout.Conflicts(l.Nodes)))
//	png, err := render.ToPNG(svg, 2.0)
//
// # Styles
//
// Two color schemes are built in, selected with [WithStyle]:
// [StyleLight] (default) and [StyleDark].
package render
