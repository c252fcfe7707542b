package layout

import (
	"fmt"

	"github.com/matzehuels/treeviz/pkg/bst"
)

// Placement strategies.
const (
	StrategyGrid   = "grid"
	StrategyRadial = "radial"
)

// Geometry constants, in user units (pixels in SVG output).
const (
	// Unit is the grid pitch of the grid strategy: one slot step is Unit
	// pixels horizontally, one depth step Unit pixels vertically.
	Unit = 30.0

	// RingRadius is the radial distance between consecutive depth rings of
	// the radial strategy.
	RingRadius = 40.0

	// Margin is the padding added around the content when computing the
	// frame, sized to keep node circles and labels inside the viewBox.
	Margin = 24.0
)

// ValidStrategies is the set of supported placement strategies.
var ValidStrategies = map[string]bool{
	StrategyGrid:   true,
	StrategyRadial: true,
}

// ValidateStrategy checks that a strategy name is supported.
func ValidateStrategy(strategy string) error {
	if !ValidStrategies[strategy] {
		return fmt.Errorf("invalid strategy: %q (must be one of: grid, radial)", strategy)
	}
	return nil
}

// Point is a 2D coordinate in user units.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a positioned tree node.
//
// Depth is the distance from the root (root = 0). Slot is the within-depth
// coordinate and its meaning depends on the strategy: horizontal
// displacement for grid, in-order binary index for radial. X and Y are the
// computed screen position before the frame offset is applied.
type Node struct {
	Depth int     `json:"depth" bson:"depth"`
	Slot  int     `json:"slot" bson:"slot"`
	Value int     `json:"value" bson:"value"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// Edge is a straight parent-to-child connection between two positions.
type Edge struct {
	From Point `json:"from" bson:"from"`
	To   Point `json:"to" bson:"to"`
}

// Coord identifies a (depth, slot) cell, the unit of conflict detection.
type Coord struct {
	Depth int `json:"depth" bson:"depth"`
	Slot  int `json:"slot" bson:"slot"`
}

// Layout is the canonical serialization format for a computed layout.
//
// Nodes are in pre-order (each node before its subtrees). The frame fields
// describe the viewport: adding (OffsetX, OffsetY) to any node or edge
// coordinate yields a position inside [0, Width] x [0, Height] with Margin
// of padding.
type Layout struct {
	Strategy  string  `json:"strategy" bson:"strategy"`
	Nodes     []Node  `json:"nodes" bson:"nodes"`
	Edges     []Edge  `json:"edges" bson:"edges"`
	Conflicts []Coord `json:"conflicts,omitempty" bson:"conflicts,omitempty"`
	OffsetX   float64 `json:"offset_x" bson:"offset_x"`
	OffsetY   float64 `json:"offset_y" bson:"offset_y"`
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
}

// Build computes a layout for t using the named strategy.
// The empty tree yields a layout with no nodes and a frame of bare margins.
// Conflict detection is a separate pass; see [Conflicts].
func Build(t *bst.Tree, strategy string) (Layout, error) {
	if err := ValidateStrategy(strategy); err != nil {
		return Layout{}, err
	}
	var l Layout
	switch strategy {
	case StrategyGrid:
		l = buildGrid(t)
	case StrategyRadial:
		l = buildRadial(t)
	}
	l.frame()
	return l, nil
}

// frame computes the offset and dimensions enclosing all nodes with Margin
// of padding on every side.
func (l *Layout) frame() {
	if len(l.Nodes) == 0 {
		l.OffsetX, l.OffsetY = Margin, Margin
		l.Width, l.Height = 2*Margin, 2*Margin
		return
	}
	minX, maxX := l.Nodes[0].X, l.Nodes[0].X
	minY, maxY := l.Nodes[0].Y, l.Nodes[0].Y
	for _, n := range l.Nodes[1:] {
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
		minY = min(minY, n.Y)
		maxY = max(maxY, n.Y)
	}
	l.OffsetX = Margin - minX
	l.OffsetY = Margin - minY
	l.Width = maxX - minX + 2*Margin
	l.Height = maxY - minY + 2*Margin
}
