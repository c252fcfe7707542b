// Package sample generates the random integer samples the trees are built
// from. Randomness lives here, at the boundary: everything downstream
// (tree building, layout, conflict detection) is a pure function of the
// sample, and a fixed seed makes the whole pipeline reproducible.
package sample

import (
	"math/rand/v2"
	"strconv"
)

const (
	// MinCount and MaxCount bound the sample size a user may request.
	MinCount = 1
	MaxCount = 40

	// MaxValue is the inclusive upper bound of sampled values.
	MaxValue = 99
)

// Generate returns count integers drawn uniformly from [0, MaxValue],
// deterministic for a given seed. A count of zero or less yields nil.
func Generate(count int, seed uint64) []int {
	if count <= 0 {
		return nil
	}
	r := rand.New(rand.NewPCG(seed, seed))
	out := make([]int, count)
	for i := range out {
		out[i] = r.IntN(MaxValue + 1)
	}
	return out
}

// ParseCount parses a user-entered sample count. Unparsable input falls
// back to 0, which produces an empty sample rather than an error.
func ParseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ClampCount clamps n to the [MinCount, MaxCount] input range.
func ClampCount(n int) int {
	return min(max(n, MinCount), MaxCount)
}
