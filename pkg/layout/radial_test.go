package layout

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/treeviz/pkg/bst"
)

const coordTolerance = 1e-9

func TestRadialRootAtOrigin(t *testing.T) {
	l, err := Build(bst.FromList([]int{5, 3, 8}), StrategyRadial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := l.Nodes[0]
	if root.Depth != 0 || root.Slot != 0 {
		t.Fatalf("root cell = (%d,%d), want (0,0)", root.Depth, root.Slot)
	}
	if math.Abs(root.X) > coordTolerance || math.Abs(root.Y) > coordTolerance {
		t.Errorf("root position = (%v,%v), want origin", root.X, root.Y)
	}
}

func TestRadialSlotIndexing(t *testing.T) {
	// left child doubles the slot, right child doubles plus one
	l, err := Build(bst.FromList([]int{50, 25, 75, 10, 30, 60, 90}), StrategyRadial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	slots := make(map[int][]int) // depth -> slots
	for _, n := range l.Nodes {
		slots[n.Depth] = append(slots[n.Depth], n.Slot)
	}
	wantDepth2 := map[int]bool{0: true, 1: true, 2: true, 3: true}
	for _, s := range slots[2] {
		if !wantDepth2[s] {
			t.Errorf("unexpected slot %d at depth 2", s)
		}
		delete(wantDepth2, s)
	}
	if len(wantDepth2) != 0 {
		t.Errorf("missing slots at depth 2: %v", wantDepth2)
	}
}

func TestRadialNoCoincidingPositions(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 25; trial++ {
		xs := make([]int, 40)
		for i := range xs {
			xs[i] = r.IntN(100)
		}
		l, err := Build(bst.FromList(xs), StrategyRadial)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for i := range l.Nodes {
			for j := i + 1; j < len(l.Nodes); j++ {
				a, b := l.Nodes[i], l.Nodes[j]
				if math.Abs(a.X-b.X) < coordTolerance && math.Abs(a.Y-b.Y) < coordTolerance {
					t.Fatalf("nodes %d and %d coincide at (%v,%v)", a.Value, b.Value, a.X, a.Y)
				}
			}
		}
	}
}

func TestRadialParentReconstruction(t *testing.T) {
	// Halving the slot at depth-1 must land exactly on the actual parent's
	// position; that is what makes edge generation work without parent
	// back-references.
	l, err := Build(bst.FromList([]int{50, 25, 75, 10, 30, 60, 90, 5, 27, 65}), StrategyRadial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	byCell := make(map[Coord]Point, len(l.Nodes))
	for _, n := range l.Nodes {
		byCell[Coord{Depth: n.Depth, Slot: n.Slot}] = Point{X: n.X, Y: n.Y}
	}

	for _, n := range l.Nodes {
		if n.Depth == 0 {
			continue
		}
		actual, ok := byCell[Coord{Depth: n.Depth - 1, Slot: n.Slot / 2}]
		if !ok {
			t.Fatalf("node %d has no parent at (%d,%d)", n.Value, n.Depth-1, n.Slot/2)
		}
		rebuilt := RadialPoint(n.Depth-1, n.Slot/2)
		if math.Abs(rebuilt.X-actual.X) > coordTolerance || math.Abs(rebuilt.Y-actual.Y) > coordTolerance {
			t.Errorf("node %d: reconstructed parent (%v,%v) != actual (%v,%v)",
				n.Value, rebuilt.X, rebuilt.Y, actual.X, actual.Y)
		}
	}
}

func TestRadialRootHasNoIncomingEdge(t *testing.T) {
	l, err := Build(bst.FromList([]int{50, 25, 75}), StrategyRadial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := len(l.Edges), len(l.Nodes)-1; got != want {
		t.Errorf("edge count = %d, want %d (root filtered out)", got, want)
	}
	for i, e := range l.Edges {
		if math.Abs(e.To.X) < coordTolerance && math.Abs(e.To.Y) < coordTolerance {
			t.Errorf("edge %d points at the root", i)
		}
	}
}

func TestRadialRingSpacing(t *testing.T) {
	l, err := Build(bst.FromList([]int{50, 25, 75, 10, 90}), StrategyRadial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, n := range l.Nodes {
		r := math.Hypot(n.X, n.Y)
		want := float64(n.Depth) * RingRadius
		if math.Abs(r-want) > coordTolerance {
			t.Errorf("node %d at depth %d has radius %v, want %v", n.Value, n.Depth, r, want)
		}
	}
}
