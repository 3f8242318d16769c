package solver

import (
	"context"
	"time"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/ports"
)

// Solve finds one placement for an n×n grid: cols[r] is the queen column in
// row r. Returns domain.ErrUnsatisfiable when no placement exists (true for
// n=2 and n=3).
func (s *BacktrackingSolver) Solve(ctx context.Context, n int) ([]domain.CellCoord, ports.Stats, error) {
	start := time.Now()
	if n < 1 {
		return nil, ports.Stats{Duration: time.Since(start)}, domain.ErrUnsatisfiable
	}
	cols := make([]int, n)
	used := make([]bool, n)
	nodes := 0
	var dfs func(r int) bool
	dfs = func(r int) bool {
		if ctx.Err() != nil {
			return false
		}
		if r == n {
			return true
		}
		for _, c := range s.columnOrder(n) {
			nodes++
			if used[c] {
				continue
			}
			if r > 0 && abs(c-cols[r-1]) == 1 {
				continue
			}
			cols[r] = c
			used[c] = true
			if dfs(r + 1) {
				return true
			}
			used[c] = false
		}
		return false
	}
	if !dfs(0) {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, domain.ErrUnsatisfiable
	}
	out := make([]domain.CellCoord, n)
	for r := 0; r < n; r++ {
		out[r] = domain.CellCoord{Row: r, Col: cols[r]}
	}
	return out, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
