package layout

import (
	"math"

	"github.com/matzehuels/treeviz/pkg/bst"
)

// RadialPoint returns the raw screen position of a radial cell.
//
// The node sits on the ring for its depth (radius depth*RingRadius) at an
// angle spreading the depth's slots evenly across a quarter turn, rotated
// by 45 degrees so the fan opens downward-right.
func RadialPoint(depth, slot int) Point {
	radius := float64(depth) * RingRadius
	span := math.Max(1, math.Pow(2, float64(depth))-1)
	angle := float64(slot)/span*(math.Pi/2) + math.Pi/4
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// buildRadial lays out t with the radial strategy. Slots follow the
// complete-binary-tree index scheme (left slot*2, right slot*2+1), so a
// node's parent cell is recoverable as (depth-1, slot/2) without a parent
// back-reference. Distinct slots at a depth map to distinct angles and
// depths to distinct radii, so no two nodes share a position.
func buildRadial(t *bst.Tree) Layout {
	l := Layout{
		Strategy: StrategyRadial,
		Nodes:    make([]Node, 0, t.Size()),
	}

	var walk func(n *bst.Tree, depth, slot int)
	walk = func(n *bst.Tree, depth, slot int) {
		if n.IsEmpty() {
			return
		}
		p := RadialPoint(depth, slot)
		l.Nodes = append(l.Nodes, Node{
			Depth: depth,
			Slot:  slot,
			Value: n.Value(),
			X:     p.X,
			Y:     p.Y,
		})
		walk(n.Left(), depth+1, slot*2)
		walk(n.Right(), depth+1, slot*2+1)
	}
	walk(t, 0, 0)

	// The root has no parent, so it is skipped in edge generation.
	for _, n := range l.Nodes {
		if n.Depth == 0 {
			continue
		}
		parent := RadialPoint(n.Depth-1, n.Slot/2)
		l.Edges = append(l.Edges, Edge{From: parent, To: Point{X: n.X, Y: n.Y}})
	}

	return l
}
