// Package model ties a raw sample to the tree built from it.
//
// The invariant every consumer relies on: the tree is always exactly
// bst.FromList of the data, rebuilt from scratch on every update. There is
// no incremental state between updates - replacing the sample discards the
// old tree entirely.
package model

import (
	"slices"

	"github.com/matzehuels/treeviz/pkg/bst"
)

// Model holds a sample in insertion order together with the tree built
// from it. The zero value is an empty sample with an empty tree. Model is
// a value type; updates return a new Model.
type Model struct {
	data []int
	tree *bst.Tree
}

// New builds a model from data. The slice is copied, so later mutation of
// the caller's slice cannot break the data/tree invariant.
func New(data []int) Model {
	return Model{
		data: slices.Clone(data),
		tree: bst.FromList(data),
	}
}

// Data returns the raw sample in insertion order.
// Callers must not mutate the returned slice.
func (m Model) Data() []int { return m.data }

// Tree returns the tree built from the sample.
func (m Model) Tree() *bst.Tree { return m.tree }

// WithData returns a model for the new sample. The previous data and tree
// are discarded, not patched.
func (m Model) WithData(data []int) Model { return New(data) }
