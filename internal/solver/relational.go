package solver

import (
	"context"
	"fmt"
	"time"

	minikanren "github.com/gitrdm/gokanlogic/pkg/minikanren"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/ports"
)

// RelationalSolver models the placement as a constraint program on the
// gokanlogic relational engine: one column variable per row with a
// Disj-enumerated domain, pairwise Neq for column distinctness, and a
// Project goal rejecting adjacent rows whose columns differ by exactly 1.
type RelationalSolver struct{}

func NewRelationalSolver() *RelationalSolver { return &RelationalSolver{} }

func (s *RelationalSolver) Solve(ctx context.Context, n int) ([]domain.CellCoord, ports.Stats, error) {
	start := time.Now()
	if n < 1 {
		return nil, ports.Stats{Duration: time.Since(start)}, domain.ErrUnsatisfiable
	}

	q := minikanren.Fresh("q")
	results := minikanren.SolutionsN(ctx, 1, queensGoal(n, q), q)
	st := ports.Stats{Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return nil, st, err
	}
	if len(results) == 0 {
		return nil, st, domain.ErrUnsatisfiable
	}
	cols, err := listToInts(results[0]["q"], n)
	if err != nil {
		return nil, st, err
	}
	out := make([]domain.CellCoord, n)
	for r := 0; r < n; r++ {
		out[r] = domain.CellCoord{Row: r, Col: cols[r]}
	}
	return out, st, nil
}

// queensGoal binds q to a list of n column positions, one per row.
func queensGoal(n int, q *minikanren.Var) minikanren.Goal {
	queens := make([]minikanren.Term, n)
	for i := 0; i < n; i++ {
		queens[i] = minikanren.Fresh(fmt.Sprintf("q%d", i))
	}

	validColumn := func(queen minikanren.Term) minikanren.Goal {
		goals := make([]minikanren.Goal, n)
		for col := 0; col < n; col++ {
			goals[col] = minikanren.Eq(queen, minikanren.A(col))
		}
		return minikanren.Disj(goals...)
	}

	var goals []minikanren.Goal
	for i := 0; i < n; i++ {
		goals = append(goals, validColumn(queens[i]))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			goals = append(goals, minikanren.Neq(queens[i], queens[j]))
		}
	}

	// Adjacent rows must not touch diagonally; longer diagonals are fine.
	goals = append(goals, minikanren.Project(queens, func(vals []minikanren.Term) minikanren.Goal {
		cols := make([]int, n)
		for i, val := range vals {
			atom, ok := val.(*minikanren.Atom)
			if !ok {
				return minikanren.Failure
			}
			col, ok := atom.Value().(int)
			if !ok {
				return minikanren.Failure
			}
			cols[i] = col
		}
		for i := 1; i < n; i++ {
			if abs(cols[i]-cols[i-1]) == 1 {
				return minikanren.Failure
			}
		}
		return minikanren.Success
	}))

	goals = append(goals, minikanren.Eq(q, minikanren.List(queens...)))
	return minikanren.Conj(goals...)
}

// listToInts walks a relational pair list and extracts n integer atoms.
func listToInts(term minikanren.Term, n int) ([]int, error) {
	out := make([]int, 0, n)
	pair, _ := term.(*minikanren.Pair)
	for pair != nil && len(out) < n {
		atom, ok := pair.Car().(*minikanren.Atom)
		if !ok {
			break
		}
		col, ok := atom.Value().(int)
		if !ok {
			break
		}
		out = append(out, col)
		pair, _ = pair.Cdr().(*minikanren.Pair)
	}
	if len(out) != n {
		return nil, fmt.Errorf("relational result is not a list of %d columns", n)
	}
	return out, nil
}
