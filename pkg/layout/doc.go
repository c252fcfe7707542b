// Package layout converts binary search trees into positioned geometry.
//
// # Overview
//
// A layout is a flat list of positioned nodes plus the edges connecting
// parents to children, ready to be handed to a renderer. Two placement
// strategies are provided, sharing the same data model:
//
//   - grid: the naive top-down layout. Recursing left shifts one slot to
//     the left, recursing right one slot to the right, and the screen
//     position is simply (Unit*slot, Unit*depth). Cheap and readable, but
//     nodes from different branches can land on the same coordinate. The
//     collisions are real and [Conflicts] finds them - this strategy exists
//     to demonstrate the flaw.
//
//   - radial: slots follow the complete-binary-tree indexing scheme
//     (left slot*2, right slot*2+1) and positions are polar: one ring per
//     depth, nodes fanned evenly across a quarter-turn arc. Distinct slots
//     at a depth map to distinct angles and depths to distinct radii, so
//     the layout is collision-free by construction.
//
// # Usage
//
//	l, err := layout.Build(bst.FromList(data), layout.StrategyGrid)
//	conflicts := layout.Conflicts(l.Nodes)
//
// The strategy is fixed per layout; recompute from the tree to switch.
//
// # Serialization
//
// [Layout] is the canonical JSON format for computed layouts, used for file
// output, API responses and caching. [WriteLayoutFile] and [ReadLayoutFile]
// round-trip it.
package layout
