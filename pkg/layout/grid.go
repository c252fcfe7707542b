package layout

import "github.com/matzehuels/treeviz/pkg/bst"

// GridPoint returns the raw screen position of a grid cell.
func GridPoint(depth, slot int) Point {
	return Point{X: Unit * float64(slot), Y: Unit * float64(depth)}
}

// buildGrid lays out t with the naive top-down strategy. The traversal
// starts at (depth 0, slot 0); recursing left moves one slot left and one
// depth down, recursing right one slot right and one depth down. Slots from
// different branches can coincide, which is the point of this strategy.
func buildGrid(t *bst.Tree) Layout {
	l := Layout{
		Strategy: StrategyGrid,
		Nodes:    make([]Node, 0, t.Size()),
	}

	var walk func(n *bst.Tree, depth, slot int)
	walk = func(n *bst.Tree, depth, slot int) {
		if n.IsEmpty() {
			return
		}
		p := GridPoint(depth, slot)
		l.Nodes = append(l.Nodes, Node{
			Depth: depth,
			Slot:  slot,
			Value: n.Value(),
			X:     p.X,
			Y:     p.Y,
		})
		if !n.Left().IsEmpty() {
			l.Edges = append(l.Edges, Edge{From: p, To: GridPoint(depth+1, slot-1)})
		}
		if !n.Right().IsEmpty() {
			l.Edges = append(l.Edges, Edge{From: p, To: GridPoint(depth+1, slot+1)})
		}
		walk(n.Left(), depth+1, slot-1)
		walk(n.Right(), depth+1, slot+1)
	}
	walk(t, 0, 0)

	return l
}
