package hint

import (
	"context"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/engine"
)

// Forced implements a minimal Hinter that looks for a zone, row, or column
// whose queen has only one legal cell left.
type Forced struct{}

func NewForced() *Forced { return &Forced{} }

// Hint returns the first forced cell found, scanning zones before rows and
// columns since zone shapes are what players reason about first.
func (h *Forced) Hint(ctx context.Context, b *engine.Board) (domain.Hint, bool, error) {
	n := b.Size()

	legal := make(map[domain.ZoneID][]domain.CellCoord, n)
	occupied := make(map[domain.ZoneID]bool, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			zone, err := b.ZoneAt(r, c)
			if err != nil {
				return domain.Hint{}, false, err
			}
			mark, err := b.MarkAt(r, c)
			if err != nil {
				return domain.Hint{}, false, err
			}
			if mark == domain.Queen {
				occupied[zone] = true
				continue
			}
			ck, err := b.QueryPlacement(r, c)
			if err != nil {
				return domain.Hint{}, false, err
			}
			if ck.OK() {
				legal[zone] = append(legal[zone], domain.CellCoord{Row: r, Col: c})
			}
		}
	}
	for zone, cells := range legal {
		if !occupied[zone] && len(cells) == 1 {
			return domain.Hint{
				Message: "Only one cell in this zone can hold its queen",
				Cells:   cells,
			}, true, nil
		}
	}

	// Fall back to rows and columns with a single legal cell.
	if cell, ok := forcedLine(b, true); ok {
		return domain.Hint{Message: "Only one cell in this row can hold its queen", Cells: []domain.CellCoord{cell}}, true, nil
	}
	if cell, ok := forcedLine(b, false); ok {
		return domain.Hint{Message: "Only one cell in this column can hold its queen", Cells: []domain.CellCoord{cell}}, true, nil
	}
	return domain.Hint{}, false, nil
}

func forcedLine(b *engine.Board, byRow bool) (domain.CellCoord, bool) {
	n := b.Size()
	for i := 0; i < n; i++ {
		var last domain.CellCoord
		count := 0
		hasQueen := false
		for j := 0; j < n; j++ {
			r, c := i, j
			if !byRow {
				r, c = j, i
			}
			mark, err := b.MarkAt(r, c)
			if err != nil {
				return domain.CellCoord{}, false
			}
			if mark == domain.Queen {
				hasQueen = true
				break
			}
			if ck, err := b.QueryPlacement(r, c); err == nil && ck.OK() {
				last = domain.CellCoord{Row: r, Col: c}
				count++
			}
		}
		if !hasQueen && count == 1 {
			return last, true
		}
	}
	return domain.CellCoord{}, false
}
