package bst

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestInsertOrdering(t *testing.T) {
	tree := FromList([]int{5, 3, 8})

	if got := tree.Value(); got != 5 {
		t.Errorf("root value = %d, want 5", got)
	}
	if got := tree.Left().Value(); got != 3 {
		t.Errorf("left child = %d, want 3", got)
	}
	if got := tree.Right().Value(); got != 8 {
		t.Errorf("right child = %d, want 8", got)
	}
}

func TestDuplicatesDropped(t *testing.T) {
	tree := FromList([]int{5, 3, 8, 3})

	if got := tree.Size(); got != 3 {
		t.Errorf("Size = %d, want 3", got)
	}
	want := []int{3, 5, 8}
	if got := tree.InOrder(); !slices.Equal(got, want) {
		t.Errorf("InOrder = %v, want %v", got, want)
	}
}

func TestInsertIdempotent(t *testing.T) {
	tree := FromList([]int{10, 4, 17})

	once := tree.Insert(4)
	twice := once.Insert(4)

	// Inserting a present value must return the receiver unchanged, not an
	// equivalent copy.
	if once != tree {
		t.Error("inserting a present value should return the same tree")
	}
	if twice != once {
		t.Error("second insert of the same value should be a no-op")
	}
}

func TestStructuralSharing(t *testing.T) {
	tree := FromList([]int{50, 25, 75})
	grown := tree.Insert(80)

	if grown == tree {
		t.Fatal("inserting a new value should produce a new tree")
	}
	// The untouched left subtree must be shared, not copied.
	if grown.Left() != tree.Left() {
		t.Error("unmodified left subtree should be structurally shared")
	}
	// The original tree must not see the new value.
	if tree.Contains(80) {
		t.Error("original tree was mutated by insert")
	}
	if !grown.Contains(80) {
		t.Error("grown tree is missing the inserted value")
	}
}

func TestInOrderIsStrictlyIncreasing(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		xs := make([]int, 40)
		for i := range xs {
			xs[i] = r.IntN(100)
		}
		got := tree40(xs).InOrder()
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Fatalf("InOrder not strictly increasing at %d: %v", i, got)
			}
		}
	}
}

func tree40(xs []int) *Tree { return FromList(xs) }

func TestEmptyTree(t *testing.T) {
	var tree *Tree

	if !tree.IsEmpty() {
		t.Error("nil tree should be empty")
	}
	if got := tree.Size(); got != 0 {
		t.Errorf("empty Size = %d, want 0", got)
	}
	if got := tree.Height(); got != 0 {
		t.Errorf("empty Height = %d, want 0", got)
	}
	if tree.Contains(1) {
		t.Error("empty tree should contain nothing")
	}
	if got := tree.InOrder(); len(got) != 0 {
		t.Errorf("empty InOrder = %v, want empty", got)
	}
}

func TestHeight(t *testing.T) {
	cases := []struct {
		name string
		xs   []int
		want int
	}{
		{"single", []int{7}, 1},
		{"balanced", []int{5, 3, 8}, 2},
		{"left chain", []int{5, 4, 3, 2, 1}, 5},
		{"right chain", []int{1, 2, 3, 4, 5}, 5},
	}
	for _, tc := range cases {
		if got := FromList(tc.xs).Height(); got != tc.want {
			t.Errorf("%s: Height = %d, want %d", tc.name, got, tc.want)
		}
	}
}
