package solver

import (
	"context"
	"time"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/ports"
)

// CountSolutions counts full-board placements satisfying all four rules for
// the given definition, stopping early once limit is reached. Counting to 2
// is how the generator verifies a puzzle has exactly one solution.
func CountSolutions(ctx context.Context, def *domain.Definition, limit int) (int, ports.Stats, error) {
	start := time.Now()
	zoneOf, err := def.ZoneLookup()
	if err != nil {
		return 0, ports.Stats{Duration: time.Since(start)}, err
	}
	n := def.Size
	cols := make([]int, n)
	colUsed := make([]bool, n)
	zoneUsed := make(map[domain.ZoneID]bool, n)
	nodes := 0
	count := 0

	var dfs func(r int) bool
	dfs = func(r int) bool {
		if ctx.Err() != nil || (limit > 0 && count >= limit) {
			return true // stop early
		}
		if r == n {
			count++
			return limit > 0 && count >= limit
		}
		for c := 0; c < n; c++ {
			nodes++
			if colUsed[c] || zoneUsed[zoneOf[r][c]] {
				continue
			}
			// Corner rule: queens are placed row by row, so only the
			// previous row can touch diagonally.
			if r > 0 && abs(c-cols[r-1]) == 1 {
				continue
			}
			cols[r] = c
			colUsed[c] = true
			zoneUsed[zoneOf[r][c]] = true
			if dfs(r + 1) {
				return true
			}
			colUsed[c] = false
			zoneUsed[zoneOf[r][c]] = false
		}
		return false
	}
	_ = dfs(0)
	if err := ctx.Err(); err != nil {
		return count, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
	}
	return count, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
