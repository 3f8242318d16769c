// Package generator builds Queens puzzles with exactly one valid solution:
// it solves for a non-attacking queen placement, grows one color zone
// around each queen, and keeps only partitions whose full rule set admits
// the generated placement and nothing else.
package generator

import "svw.info/queens/internal/ports"

// UniqueGenerator creates puzzles and verifies single-solution-ness with
// the provided counter. Naive zone growth alone does not guarantee a
// unique solution, so every candidate partition is checked exhaustively
// and rejected unless exactly one solution exists.
type UniqueGenerator struct {
	Counter ports.SolutionCounter
}

// NewUniqueGenerator wires a generator that uses the given counter for
// uniqueness checks.
func NewUniqueGenerator(c ports.SolutionCounter) *UniqueGenerator {
	return &UniqueGenerator{Counter: c}
}
