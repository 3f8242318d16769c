package generator

import (
	"math/rand"

	"svw.info/queens/internal/domain"
)

// growZones partitions the n×n grid into n connected regions, one seeded at
// each queen. Unclaimed cells are annexed one at a time by a randomly
// chosen (cell, adjacent zone) pair, so regions stay 4-connected by
// construction and their shapes vary between attempts.
func growZones(rng *rand.Rand, n int, queens []domain.CellCoord) []domain.Zone {
	owner := make([][]int, n)
	for r := 0; r < n; r++ {
		owner[r] = make([]int, n)
		for c := 0; c < n; c++ {
			owner[r][c] = -1
		}
	}
	for i, q := range queens {
		owner[q.Row][q.Col] = i
	}

	// Per-attempt growth rates. Skewing annexation toward a few greedy
	// zones leaves others small, and small zones pin their queens, which
	// makes a partition far more likely to admit a single solution.
	rate := make([]int, n)
	for i := range rate {
		rate[i] = 1 << rng.Intn(4)
	}

	type candidate struct {
		cell domain.CellCoord
		zone int
	}
	remaining := n*n - n
	cands := make([]candidate, 0, n*n)
	for remaining > 0 {
		cands = cands[:0]
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				if owner[r][c] != -1 {
					continue
				}
				// A cell bordering a zone through several neighbors shows
				// up once per border, which weights growth toward compact
				// region boundaries; the zone's growth rate multiplies that.
				for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr, nc := r+d[0], c+d[1]
					if nr < 0 || nr >= n || nc < 0 || nc >= n {
						continue
					}
					if z := owner[nr][nc]; z != -1 {
						for k := 0; k < rate[z]; k++ {
							cands = append(cands, candidate{domain.CellCoord{Row: r, Col: c}, z})
						}
					}
				}
			}
		}
		pick := cands[rng.Intn(len(cands))]
		owner[pick.cell.Row][pick.cell.Col] = pick.zone
		remaining--
	}

	zones := make([]domain.Zone, n)
	for i := range zones {
		zones[i].ID = domain.ZoneID(i)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			z := owner[r][c]
			zones[z].Cells = append(zones[z].Cells, domain.CellCoord{Row: r, Col: c})
		}
	}
	return zones
}
