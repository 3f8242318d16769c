package validator

import (
	"context"

	"svw.info/queens/internal/domain"
)

// DefinitionValidator checks that a puzzle definition's zones partition the
// grid exactly and that every zone is 4-connected. The offending cells are
// reported so a UI can highlight them.
type DefinitionValidator struct{}

func New() *DefinitionValidator { return &DefinitionValidator{} }

func (v *DefinitionValidator) Validate(ctx context.Context, def *domain.Definition) (bool, []domain.CellCoord, error) {
	n := def.Size
	if n < 1 || len(def.Zones) != n {
		return false, nil, nil
	}
	bad := make([]domain.CellCoord, 0, 8)

	claims := make([][]int, n)
	for r := 0; r < n; r++ {
		claims[r] = make([]int, n)
	}
	for _, z := range def.Zones {
		for _, c := range z.Cells {
			if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n {
				bad = append(bad, c)
				continue
			}
			claims[c.Row][c.Col]++
			if claims[c.Row][c.Col] > 1 {
				bad = append(bad, c)
			}
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if claims[r][c] == 0 {
				bad = append(bad, domain.CellCoord{Row: r, Col: c})
			}
		}
	}

	for _, z := range def.Zones {
		if len(z.Cells) == 0 {
			return false, bad, nil
		}
		bad = append(bad, disconnected(n, z)...)
	}
	return len(bad) == 0, bad, nil
}

// disconnected returns the cells of z not reachable from its first cell by
// 4-directional steps inside the zone.
func disconnected(n int, z domain.Zone) []domain.CellCoord {
	member := make(map[domain.CellCoord]bool, len(z.Cells))
	for _, c := range z.Cells {
		if c.Row >= 0 && c.Row < n && c.Col >= 0 && c.Col < n {
			member[c] = true
		}
	}
	if len(member) == 0 {
		return nil
	}
	start := z.Cells[0]
	visited := map[domain.CellCoord]bool{start: true}
	queue := []domain.CellCoord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := domain.CellCoord{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if member[next] && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	var out []domain.CellCoord
	for _, c := range z.Cells {
		if member[c] && !visited[c] {
			out = append(out, c)
		}
	}
	return out
}
