// Package engine implements the Queens rule engine: a pure state machine
// that owns one play session's board and answers "is this placement legal"
// and "is the puzzle solved". It has no I/O and no rendering knowledge.
//
// Legality of a placement at (r, c) means all four of:
//   - no other queen in row r
//   - no other queen in column c
//   - no other queen in the color zone of (r, c)
//   - no queen on any of the up-to-4 diagonal neighbors of (r, c)
//
// Row, column, and zone occupancy are tracked incrementally so every check
// is O(1); the corner check is at most 4 lookups. Place and remove keep the
// counters symmetric, so Solved() needs no pairwise rescan.
package engine

import (
	"svw.info/queens/internal/domain"
)

// Board is the mutable state of one play session. Not safe for concurrent
// use; callers serialize access (one player action at a time).
type Board struct {
	n      int
	zoneOf [][]domain.ZoneID
	marks  [][]domain.CellMark

	rowCount  []int
	colCount  []int
	zoneQueen map[domain.ZoneID]domain.CellCoord
	queens    int
}

// New builds a session board from a puzzle definition. It rejects any
// definition whose zones do not partition the grid exactly.
func New(def *domain.Definition) (*Board, error) {
	zoneOf, err := def.ZoneLookup()
	if err != nil {
		return nil, err
	}
	n := def.Size
	b := &Board{
		n:         n,
		zoneOf:    zoneOf,
		marks:     make([][]domain.CellMark, n),
		rowCount:  make([]int, n),
		colCount:  make([]int, n),
		zoneQueen: make(map[domain.ZoneID]domain.CellCoord, n),
	}
	for r := 0; r < n; r++ {
		b.marks[r] = make([]domain.CellMark, n)
	}
	return b, nil
}

// Size returns the grid dimension N.
func (b *Board) Size() int { return b.n }

// Queens returns the number of queens currently placed.
func (b *Board) Queens() int { return b.queens }

// Solved reports whether all N queens are placed. The incremental
// invariants (at most one queen per row, column, and zone; no corner
// contact, enforced at placement time) make this equivalent to a full
// pairwise check.
func (b *Board) Solved() bool { return b.queens == b.n }

// MarkAt returns the mark at (r, c).
func (b *Board) MarkAt(r, c int) (domain.CellMark, error) {
	if !b.inBounds(r, c) {
		return domain.Empty, domain.ErrInvalidCoordinate
	}
	return b.marks[r][c], nil
}

// ZoneAt returns the zone ID of (r, c).
func (b *Board) ZoneAt(r, c int) (domain.ZoneID, error) {
	if !b.inBounds(r, c) {
		return 0, domain.ErrInvalidCoordinate
	}
	return b.zoneOf[r][c], nil
}

// QueryPlacement evaluates the four rules for a queen at (r, c) against the
// current board, ignoring any queen already at (r, c) itself. It never
// mutates state.
func (b *Board) QueryPlacement(r, c int) (domain.Checks, error) {
	if !b.inBounds(r, c) {
		return domain.Checks{}, domain.ErrInvalidCoordinate
	}
	return b.checks(r, c), nil
}

func (b *Board) checks(r, c int) domain.Checks {
	self := 0
	if b.marks[r][c] == domain.Queen {
		self = 1
	}
	zone := b.zoneOf[r][c]
	occ, zoneTaken := b.zoneQueen[zone]
	if zoneTaken && occ.Row == r && occ.Col == c {
		zoneTaken = false
	}
	return domain.Checks{
		Row:       b.rowCount[r]-self == 0,
		Column:    b.colCount[c]-self == 0,
		ColorZone: !zoneTaken,
		Corner:    !b.cornerTouch(r, c),
	}
}

// cornerTouch reports whether any diagonal neighbor of (r, c) holds a queen.
func (b *Board) cornerTouch(r, c int) bool {
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		nr, nc := r+d[0], c+d[1]
		if b.inBounds(nr, nc) && b.marks[nr][nc] == domain.Queen {
			return true
		}
	}
	return false
}

// PlaceQueen attempts to put a queen at (r, c). A cross at the target is
// silently cleared. On an illegal placement the board is left untouched and
// the returned Move carries the failing checks.
func (b *Board) PlaceQueen(r, c int) (domain.Move, error) {
	if !b.inBounds(r, c) {
		return domain.Move{}, domain.ErrInvalidCoordinate
	}
	cell := domain.CellCoord{Row: r, Col: c}
	if b.marks[r][c] == domain.Queen {
		return domain.Move{Cell: cell, Mark: domain.Queen}, domain.ErrCellOccupied
	}
	ck := b.checks(r, c)
	if !ck.OK() {
		return domain.Move{Cell: cell, Mark: b.marks[r][c], Checks: &ck}, nil
	}
	zone := b.zoneOf[r][c]
	b.marks[r][c] = domain.Queen
	b.rowCount[r]++
	b.colCount[c]++
	b.zoneQueen[zone] = cell
	b.queens++
	return domain.Move{Cell: cell, Mark: domain.Queen, Checks: &ck, Placed: true, Solved: b.Solved()}, nil
}

// RemoveQueen takes the queen off (r, c) and reverts the bookkeeping.
func (b *Board) RemoveQueen(r, c int) (domain.Move, error) {
	if !b.inBounds(r, c) {
		return domain.Move{}, domain.ErrInvalidCoordinate
	}
	cell := domain.CellCoord{Row: r, Col: c}
	if b.marks[r][c] != domain.Queen {
		return domain.Move{Cell: cell, Mark: b.marks[r][c]}, domain.ErrNotAQueen
	}
	b.marks[r][c] = domain.Empty
	b.rowCount[r]--
	b.colCount[c]--
	delete(b.zoneQueen, b.zoneOf[r][c])
	b.queens--
	return domain.Move{Cell: cell, Mark: domain.Empty}, nil
}

// ToggleCross flips a scratch-mark at (r, c) between Empty and Cross.
// Crosses never touch the rule counters.
func (b *Board) ToggleCross(r, c int) (domain.Move, error) {
	if !b.inBounds(r, c) {
		return domain.Move{}, domain.ErrInvalidCoordinate
	}
	cell := domain.CellCoord{Row: r, Col: c}
	if b.marks[r][c] == domain.Queen {
		return domain.Move{Cell: cell, Mark: domain.Queen}, domain.ErrCellOccupied
	}
	if b.marks[r][c] == domain.Cross {
		b.marks[r][c] = domain.Empty
	} else {
		b.marks[r][c] = domain.Cross
	}
	return domain.Move{Cell: cell, Mark: b.marks[r][c], Solved: b.Solved()}, nil
}

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.n && c >= 0 && c < b.n
}
