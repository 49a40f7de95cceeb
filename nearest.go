package themec

import "sort"

// SearchStrategy selects the implementation behind NearestIndexWith.
// All strategies return identical indices for identical input.
type SearchStrategy int

// Search strategies.
const (
	SearchBinary SearchStrategy = iota
	SearchLinear
	SearchChunked
)

// NearestIndex returns the index of the entry in the ascending slice lums
// closest to target. An exact tie between two entries resolves to the lower
// index. An empty slice yields 0, which callers must not use as an index.
func NearestIndex(lums []float32, target float32) int {
	return nearestBinary(lums, target)
}

// NearestIndexWith is NearestIndex using the given strategy.
func NearestIndexWith(s SearchStrategy, lums []float32, target float32) int {
	switch s {
	case SearchLinear:
		return nearestLinear(lums, target)
	case SearchChunked:
		return nearestChunked(lums, target)
	default:
		return nearestBinary(lums, target)
	}
}

func distance(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

func nearestBinary(lums []float32, target float32) int {
	n := len(lums)
	if n == 0 {
		return 0
	}
	i := sort.Search(n, func(i int) bool { return lums[i] >= target })
	if i == n {
		i = n - 1
	}
	// lums[i-1] < target <= lums[i]. Step down while the lower neighbor is
	// at least as close; this also settles runs of equal distance on their
	// earliest entry, matching the scans.
	for i > 0 && distance(lums[i-1], target) <= distance(lums[i], target) {
		i--
	}
	return i
}

func nearestLinear(lums []float32, target float32) int {
	if len(lums) == 0 {
		return 0
	}
	best := 0
	bestDist := distance(lums[0], target)
	for i := 1; i < len(lums); i++ {
		if d := distance(lums[i], target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

const chunkWidth = 8

// nearestChunked computes distances a block at a time so the compiler can
// keep a block in registers, then reduces each block with a strict minimum.
func nearestChunked(lums []float32, target float32) int {
	if len(lums) == 0 {
		return 0
	}
	best := 0
	bestDist := distance(lums[0], target)
	var block [chunkWidth]float32

	i := 0
	for ; i+chunkWidth <= len(lums); i += chunkWidth {
		chunk := lums[i : i+chunkWidth : i+chunkWidth]
		for j := range block {
			block[j] = distance(chunk[j], target)
		}
		for j, d := range block {
			if d < bestDist {
				best, bestDist = i+j, d
			}
		}
	}
	for ; i < len(lums); i++ {
		if d := distance(lums[i], target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
