package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"svw.info/queens/internal/domain"
)

// rowZones builds a trivially valid definition where zone i is row i.
// Connected, exactly N zones, partitions the grid.
func rowZones(n int) *domain.Definition {
	def := &domain.Definition{Size: n}
	for r := 0; r < n; r++ {
		z := domain.Zone{ID: domain.ZoneID(r)}
		for c := 0; c < n; c++ {
			z.Cells = append(z.Cells, domain.CellCoord{Row: r, Col: c})
		}
		def.Zones = append(def.Zones, z)
	}
	return def
}

// scenario4 is the 4×4 example partition: four irregular zones A–D.
func scenario4() *domain.Definition {
	return &domain.Definition{
		Size: 4,
		Zones: []domain.Zone{
			{ID: 0, Cells: []domain.CellCoord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}},
			{ID: 1, Cells: []domain.CellCoord{{Row: 0, Col: 2}, {Row: 0, Col: 3}, {Row: 1, Col: 3}}},
			{ID: 2, Cells: []domain.CellCoord{{Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 3, Col: 0}, {Row: 3, Col: 1}}},
			{ID: 3, Cells: []domain.CellCoord{{Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 3}}},
		},
	}
}

func mustBoard(t *testing.T, def *domain.Definition) *Board {
	t.Helper()
	b, err := New(def)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b
}

// bruteforceSolved re-derives "solved" from scratch: N queens, pairwise
// distinct rows, columns, zones, and no two diagonally adjacent.
func bruteforceSolved(b *Board) bool {
	var qs []domain.CellCoord
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if b.marks[r][c] == domain.Queen {
				qs = append(qs, domain.CellCoord{Row: r, Col: c})
			}
		}
	}
	if len(qs) != b.n {
		return false
	}
	for i := 0; i < len(qs); i++ {
		for j := i + 1; j < len(qs); j++ {
			a, z := qs[i], qs[j]
			if a.Row == z.Row || a.Col == z.Col {
				return false
			}
			if b.zoneOf[a.Row][a.Col] == b.zoneOf[z.Row][z.Col] {
				return false
			}
			dr, dc := a.Row-z.Row, a.Col-z.Col
			if dr < 0 {
				dr = -dr
			}
			if dc < 0 {
				dc = -dc
			}
			if dr == 1 && dc == 1 {
				return false
			}
		}
	}
	return true
}

func checkCounts(t *testing.T, b *Board) {
	t.Helper()
	for r := 0; r < b.n; r++ {
		want := 0
		for c := 0; c < b.n; c++ {
			if b.marks[r][c] == domain.Queen {
				want++
			}
		}
		if b.rowCount[r] != want {
			t.Fatalf("rowCount[%d] = %d, want %d", r, b.rowCount[r], want)
		}
	}
	for c := 0; c < b.n; c++ {
		want := 0
		for r := 0; r < b.n; r++ {
			if b.marks[r][c] == domain.Queen {
				want++
			}
		}
		if b.colCount[c] != want {
			t.Fatalf("colCount[%d] = %d, want %d", c, b.colCount[c], want)
		}
	}
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if b.marks[r][c] != domain.Queen {
				continue
			}
			occ, ok := b.zoneQueen[b.zoneOf[r][c]]
			if !ok || occ.Row != r || occ.Col != c {
				t.Fatalf("zoneQueen out of sync for queen at (%d,%d)", r, c)
			}
		}
	}
}

func TestScenario4Solve(t *testing.T) {
	b := mustBoard(t, scenario4())

	// One queen per row, column, and zone; no diagonal contact.
	solution := []domain.CellCoord{{Row: 0, Col: 1}, {Row: 1, Col: 3}, {Row: 2, Col: 0}, {Row: 3, Col: 2}}
	for i, q := range solution {
		mv, err := b.PlaceQueen(q.Row, q.Col)
		if err != nil {
			t.Fatalf("place %v: %v", q, err)
		}
		if !mv.Placed {
			t.Fatalf("place %v rejected: %+v", q, mv.Checks)
		}
		wantSolved := i == len(solution)-1
		if mv.Solved != wantSolved {
			t.Fatalf("after %v solved=%v, want %v", q, mv.Solved, wantSolved)
		}
	}
	if !b.Solved() || !bruteforceSolved(b) {
		t.Fatal("board should be solved by both incremental and pairwise checks")
	}
}

func TestCornerViolation(t *testing.T) {
	b := mustBoard(t, scenario4())
	if _, err := b.PlaceQueen(0, 0); err != nil {
		t.Fatalf("place (0,0): %v", err)
	}
	ck, err := b.QueryPlacement(1, 1)
	if err != nil {
		t.Fatalf("query (1,1): %v", err)
	}
	if ck.Corner {
		t.Fatal("cornerOk should be false for diagonal touch")
	}
	mv, err := b.PlaceQueen(1, 1)
	if err != nil {
		t.Fatalf("place (1,1): %v", err)
	}
	if mv.Placed {
		t.Fatal("diagonal-touch placement must be rejected")
	}
	if mv.Checks == nil || mv.Checks.Corner {
		t.Fatalf("rejected move should report corner violation, got %+v", mv.Checks)
	}
	// Same zone as (0,0) too: zone A holds (0,0),(0,1),(1,1).
	if mv.Checks.ColorZone {
		t.Fatal("rejected move should report zone violation")
	}
	if b.Queens() != 1 {
		t.Fatalf("board mutated by rejected placement: %d queens", b.Queens())
	}
}

func TestQueryExcludesProbedCell(t *testing.T) {
	b := mustBoard(t, scenario4())
	if _, err := b.PlaceQueen(0, 1); err != nil {
		t.Fatal(err)
	}
	// The queen at (0,1) must not block a re-check of its own cell.
	ck, err := b.QueryPlacement(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !ck.OK() {
		t.Fatalf("self-check should pass, got %+v", ck)
	}
}

func TestPlaceRemoveRoundTrip(t *testing.T) {
	// Two boards fed the same prefix; the extra place+remove on one must
	// leave them bit-for-bit identical.
	a := mustBoard(t, scenario4())
	b := mustBoard(t, scenario4())
	for _, q := range []domain.CellCoord{{Row: 0, Col: 1}, {Row: 2, Col: 0}} {
		if _, err := a.PlaceQueen(q.Row, q.Col); err != nil {
			t.Fatal(err)
		}
		if _, err := b.PlaceQueen(q.Row, q.Col); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.PlaceQueen(3, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := b.RemoveQueen(3, 2); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("place then remove did not restore prior state")
	}
}

func TestCrossSemantics(t *testing.T) {
	b := mustBoard(t, scenario4())

	mv, err := b.ToggleCross(2, 2)
	if err != nil || mv.Mark != domain.Cross {
		t.Fatalf("first toggle: mark=%v err=%v", mv.Mark, err)
	}
	mv, err = b.ToggleCross(2, 2)
	if err != nil || mv.Mark != domain.Empty {
		t.Fatalf("second toggle: mark=%v err=%v", mv.Mark, err)
	}

	// A cross never blocks a queen: it is cleared by the placement.
	if _, err := b.ToggleCross(0, 1); err != nil {
		t.Fatal(err)
	}
	mv, err = b.PlaceQueen(0, 1)
	if err != nil || !mv.Placed {
		t.Fatalf("queen over cross: %+v err=%v", mv, err)
	}

	// Toggling a cross onto a queen fails and changes nothing.
	if _, err := b.ToggleCross(0, 1); !errors.Is(err, domain.ErrCellOccupied) {
		t.Fatalf("want ErrCellOccupied, got %v", err)
	}
	if m, _ := b.MarkAt(0, 1); m != domain.Queen {
		t.Fatalf("queen disturbed by failed toggle: %v", m)
	}
	checkCounts(t, b)
}

func TestErrors(t *testing.T) {
	b := mustBoard(t, scenario4())
	if _, err := b.PlaceQueen(-1, 0); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("want ErrInvalidCoordinate, got %v", err)
	}
	if _, err := b.QueryPlacement(0, 4); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("want ErrInvalidCoordinate, got %v", err)
	}
	if _, err := b.RemoveQueen(0, 0); !errors.Is(err, domain.ErrNotAQueen) {
		t.Fatalf("want ErrNotAQueen, got %v", err)
	}
	if _, err := b.PlaceQueen(0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.PlaceQueen(0, 0); !errors.Is(err, domain.ErrCellOccupied) {
		t.Fatalf("want ErrCellOccupied, got %v", err)
	}
}

func TestMalformedDefinitions(t *testing.T) {
	cases := []struct {
		name string
		def  *domain.Definition
	}{
		{"gap", &domain.Definition{Size: 2, Zones: []domain.Zone{
			{ID: 0, Cells: []domain.CellCoord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
			{ID: 1, Cells: []domain.CellCoord{{Row: 1, Col: 0}}},
		}}},
		{"duplicate", &domain.Definition{Size: 2, Zones: []domain.Zone{
			{ID: 0, Cells: []domain.CellCoord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
			{ID: 1, Cells: []domain.CellCoord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}},
		}}},
		{"out of range", &domain.Definition{Size: 2, Zones: []domain.Zone{
			{ID: 0, Cells: []domain.CellCoord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
			{ID: 1, Cells: []domain.CellCoord{{Row: 1, Col: 0}, {Row: 1, Col: 2}}},
		}}},
		{"wrong zone count", &domain.Definition{Size: 2, Zones: []domain.Zone{
			{ID: 0, Cells: []domain.CellCoord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.def); !errors.Is(err, domain.ErrMalformedDefinition) {
				t.Fatalf("want ErrMalformedDefinition, got %v", err)
			}
		})
	}
}

func TestIncrementalConsistencyRandomOps(t *testing.T) {
	for _, n := range []int{4, 5, 8} {
		rng := rand.New(rand.NewSource(int64(n)))
		b := mustBoard(t, rowZones(n))
		for i := 0; i < 500; i++ {
			r, c := rng.Intn(n), rng.Intn(n)
			switch rng.Intn(3) {
			case 0:
				_, _ = b.PlaceQueen(r, c)
			case 1:
				_, _ = b.RemoveQueen(r, c)
			default:
				_, _ = b.ToggleCross(r, c)
			}
			checkCounts(t, b)
			if b.Solved() != bruteforceSolved(b) {
				t.Fatalf("n=%d op %d: Solved()=%v disagrees with pairwise scan", n, i, b.Solved())
			}
		}
	}
}
