package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/engine"
	"svw.info/queens/internal/ports"
	"svw.info/queens/internal/solver"
)

// Retry budgets. Random zone growth only sometimes yields a single-solution
// partition, and acceptance gets rarer as n grows, so each queen placement
// gets a deep well of growth attempts before a new placement is drawn.
// Grids up to n=12 converge within a small fraction of the budget.
const (
	placementAttempts = 32
	zoneAttempts      = 2048
)

// ErrBudgetExhausted means no single-solution partition was found within
// the retry budget. Small grids (N≤12) converge long before this fires.
var ErrBudgetExhausted = errors.New("generation retry budget exhausted")

// Generate creates a puzzle for an n×n grid with seed-reproducible output.
// The returned puzzle carries the zone partition and the canonical
// solution, and has been verified to admit that solution and no other.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, n int) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	nodes := 0

	for a := 0; a < placementAttempts; a++ {
		queens, st, err := solver.NewSeededBacktrackingSolver(rng.Int63()).Solve(ctx, n)
		nodes += st.Nodes
		if err != nil {
			// Unsatisfiable sizes (n=2, 3) fail the same way on every
			// attempt, so report immediately.
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		for z := 0; z < zoneAttempts; z++ {
			if err := ctx.Err(); err != nil {
				return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
			}
			def := domain.Definition{
				Size:     n,
				Zones:    growZones(rng, n, queens),
				Solution: queens,
			}
			count, cst, err := g.Counter.Count(ctx, &def, 2)
			nodes += cst.Nodes
			if err != nil {
				return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
			}
			if count != 1 {
				continue
			}
			if err := replaySolution(&def); err != nil {
				return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
			}
			p := &domain.Puzzle{
				Seed:       seed,
				Size:       n,
				Definition: def,
				CreatedAt:  time.Now().UnixNano(),
			}
			return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		}
	}
	return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, ErrBudgetExhausted
}

// replaySolution self-verifies a generated puzzle by playing its canonical
// solution through a fresh rule engine.
func replaySolution(def *domain.Definition) error {
	b, err := engine.New(def)
	if err != nil {
		return err
	}
	for _, q := range def.Solution {
		mv, err := b.PlaceQueen(q.Row, q.Col)
		if err != nil {
			return err
		}
		if !mv.Placed {
			return fmt.Errorf("generated solution violates rules at (%d,%d)", q.Row, q.Col)
		}
	}
	if !b.Solved() {
		return errors.New("generated solution does not solve its own puzzle")
	}
	return nil
}
