package layout

import (
	"testing"

	"github.com/matzehuels/treeviz/pkg/bst"
)

func TestConflictsDetectsSlotCollision(t *testing.T) {
	// 40 sits right of 25 (slot -1+1 = 0 at depth 2) and 60 left of 75
	// (slot +1-1 = 0 at depth 2): a forced grid collision.
	l, err := Build(bst.FromList([]int{50, 25, 75, 40, 60}), StrategyGrid)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := Conflicts(l.Nodes)
	if len(got) != 1 {
		t.Fatalf("conflicts = %v, want exactly one", got)
	}
	if got[0] != (Coord{Depth: 2, Slot: 0}) {
		t.Errorf("conflict = %+v, want depth 2 slot 0", got[0])
	}
}

func TestConflictsEmptyForCollisionFreeTree(t *testing.T) {
	l, err := Build(bst.FromList([]int{5, 3, 8}), StrategyGrid)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := Conflicts(l.Nodes); len(got) != 0 {
		t.Errorf("conflicts = %v, want none", got)
	}
}

func TestConflictsSortedAndDeduplicated(t *testing.T) {
	nodes := []Node{
		{Depth: 3, Slot: 1, Value: 1},
		{Depth: 3, Slot: 1, Value: 2},
		{Depth: 3, Slot: 1, Value: 3}, // triple occupancy is still one conflict cell
		{Depth: 2, Slot: 0, Value: 4},
		{Depth: 2, Slot: 0, Value: 5},
		{Depth: 1, Slot: -1, Value: 6},
	}
	got := Conflicts(nodes)
	want := []Coord{{Depth: 2, Slot: 0}, {Depth: 3, Slot: 1}}
	if len(got) != len(want) {
		t.Fatalf("conflicts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("conflict %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestConflictsRadialNeverCollides(t *testing.T) {
	// The same insertion order that forces a grid collision is clean under
	// radial indexing.
	l, err := Build(bst.FromList([]int{50, 25, 75, 40, 60}), StrategyRadial)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := Conflicts(l.Nodes); len(got) != 0 {
		t.Errorf("radial conflicts = %v, want none", got)
	}
}
