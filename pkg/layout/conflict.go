package layout

import (
	"cmp"
	"slices"
)

// Conflicts returns the (depth, slot) cells occupied by two or more
// distinct nodes, sorted by depth then slot for deterministic output.
//
// This is the detection pass for the grid strategy's slot collisions: it
// never alters the nodes, it only identifies which rendered positions need
// highlighting. It is pointless for radial layouts, which are collision-free
// by construction.
//
// Only exact coordinate collisions are flagged. Circles that merely sit
// close enough to touch are left alone; that simplification is intentional.
func Conflicts(nodes []Node) []Coord {
	counts := make(map[Coord]int, len(nodes))
	for _, n := range nodes {
		counts[Coord{Depth: n.Depth, Slot: n.Slot}]++
	}

	var out []Coord
	for c, n := range counts {
		if n > 1 {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Coord) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.Slot, b.Slot)
	})
	return out
}
