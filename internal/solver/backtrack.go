// Package solver finds non-attacking queen placements and counts full-board
// solutions under the complete rule set (row, column, zone, corner).
//
// A placement assigns one queen per row such that all columns are distinct
// and queens in adjacent rows never sit in adjacent columns. Only the
// 1-step corner touch is forbidden, matching the interactive rule; longer
// diagonals are allowed.
package solver

import "math/rand"

// BacktrackingSolver is a straightforward recursive solver. A non-nil rng
// shuffles the column order per row so the generator can draw varied
// placements from one seed.
type BacktrackingSolver struct {
	rng *rand.Rand
}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

// NewSeededBacktrackingSolver randomizes column exploration order.
func NewSeededBacktrackingSolver(seed int64) *BacktrackingSolver {
	return &BacktrackingSolver{rng: rand.New(rand.NewSource(seed))}
}

// columnOrder returns the candidate columns for one row, shuffled when the
// solver is seeded.
func (s *BacktrackingSolver) columnOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if s.rng != nil {
		s.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	return order
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
