// Package bst implements a persistent binary search tree over integers.
//
// The tree is immutable: [Tree.Insert] returns a new tree that shares all
// unmodified subtrees with its receiver, so building a tree from a sample is
// a plain left fold and previously computed trees stay valid. A nil *Tree is
// the empty tree and every method is safe to call on it.
//
// # Shape sensitivity
//
// There is no balancing. The shape of the tree is a deterministic function
// of insertion order, which is exactly what the layout visualizations rely
// on: skewed insertion orders produce the deep, lopsided shapes that make
// layout trade-offs visible.
//
// # Usage
//
//	t := bst.FromList([]int{5, 3, 8})
//	t.Size()    // 3
//	t.InOrder() // [3 5 8]
//
// Duplicate values are dropped silently:
//
//	bst.FromList([]int{5, 3, 8, 3}).Size() // still 3
package bst
