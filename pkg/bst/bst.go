package bst

// Tree is a node of a persistent binary search tree.
// A nil *Tree is the empty tree. All values in the left subtree are strictly
// smaller than the node's value, all values in the right subtree strictly
// larger.
type Tree struct {
	value int
	left  *Tree
	right *Tree
}

// Value returns the value stored at the root of t.
// The result is meaningless for the empty tree; callers should check
// IsEmpty first when the tree may be empty.
func (t *Tree) Value() int {
	if t == nil {
		return 0
	}
	return t.value
}

// Left returns the left subtree (nil for the empty tree).
func (t *Tree) Left() *Tree {
	if t == nil {
		return nil
	}
	return t.left
}

// Right returns the right subtree (nil for the empty tree).
func (t *Tree) Right() *Tree {
	if t == nil {
		return nil
	}
	return t.right
}

// IsEmpty reports whether t is the empty tree.
func (t *Tree) IsEmpty() bool { return t == nil }

// Insert returns a tree containing x in addition to everything in t.
// The receiver is never modified; the result shares every subtree that the
// insertion did not touch. Inserting a value that is already present returns
// the receiver unchanged, so repeated inserts of the same value are no-ops.
func (t *Tree) Insert(x int) *Tree {
	if t == nil {
		return &Tree{value: x}
	}
	switch {
	case x < t.value:
		return &Tree{value: t.value, left: t.left.Insert(x), right: t.right}
	case x > t.value:
		return &Tree{value: t.value, left: t.left, right: t.right.Insert(x)}
	default:
		return t
	}
}

// FromList folds Insert over xs left to right, starting from the empty tree.
// The resulting shape depends on the order of xs; duplicates are dropped.
func FromList(xs []int) *Tree {
	var t *Tree
	for _, x := range xs {
		t = t.Insert(x)
	}
	return t
}

// Contains reports whether x is present in t.
func (t *Tree) Contains(x int) bool {
	for t != nil {
		switch {
		case x < t.value:
			t = t.left
		case x > t.value:
			t = t.right
		default:
			return true
		}
	}
	return false
}

// Size returns the number of values stored in t.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return 1 + t.left.Size() + t.right.Size()
}

// Height returns the number of nodes on the longest root-to-leaf path.
// The empty tree has height 0, a single node height 1.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return 1 + max(t.left.Height(), t.right.Height())
}

// InOrder returns the values of t in sorted order.
// Because duplicates are dropped on insert, the result is strictly
// increasing.
func (t *Tree) InOrder() []int {
	out := make([]int, 0, t.Size())
	var walk func(*Tree)
	walk = func(n *Tree) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.value)
		walk(n.right)
	}
	walk(t)
	return out
}
