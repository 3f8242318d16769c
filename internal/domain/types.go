package domain

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Zone is one color region: a set of 4-connected cells that must end up
// holding exactly one queen. The core treats the ID as opaque; mapping IDs
// to display colors is the view's business.
type Zone struct {
	ID    ZoneID      `json:"id"`
	Cells []CellCoord `json:"cells"`
}

// Definition describes one Queens puzzle: an N×N grid partitioned into N
// zones, optionally with the canonical solution the generator built it from.
// Immutable after creation.
type Definition struct {
	Size     int         `json:"n"`
	Zones    []Zone      `json:"zones"`
	Solution []CellCoord `json:"solution,omitempty"`
}

// ZoneLookup flattens the zone cell lists into a per-cell table. It reports
// ErrMalformedDefinition if the zones do not partition the grid exactly.
func (d *Definition) ZoneLookup() ([][]ZoneID, error) {
	n := d.Size
	if n < 1 || len(d.Zones) != n {
		return nil, ErrMalformedDefinition
	}
	zoneOf := make([][]ZoneID, n)
	seen := make([][]bool, n)
	for r := 0; r < n; r++ {
		zoneOf[r] = make([]ZoneID, n)
		seen[r] = make([]bool, n)
	}
	for _, z := range d.Zones {
		if len(z.Cells) == 0 {
			return nil, ErrMalformedDefinition
		}
		for _, c := range z.Cells {
			if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n {
				return nil, ErrMalformedDefinition
			}
			if seen[c.Row][c.Col] {
				return nil, ErrMalformedDefinition
			}
			seen[c.Row][c.Col] = true
			zoneOf[c.Row][c.Col] = z.ID
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if !seen[r][c] {
				return nil, ErrMalformedDefinition
			}
		}
	}
	return zoneOf, nil
}

// Checks is the structured result of testing one placement against the four
// rules. A field is true when that rule would NOT be violated.
type Checks struct {
	Row       bool `json:"row"`
	Column    bool `json:"column"`
	ColorZone bool `json:"colorZone"`
	Corner    bool `json:"corner"`
}

// OK reports whether the placement is legal under all four rules.
func (c Checks) OK() bool {
	return c.Row && c.Column && c.ColorZone && c.Corner
}

// Move reports the outcome of one player action to the presentation layer.
type Move struct {
	Cell   CellCoord `json:"cell"`
	Mark   CellMark  `json:"mark"`
	Checks *Checks   `json:"checks,omitempty"` // set on placement attempts
	Placed bool      `json:"placed"`
	Solved bool      `json:"solved"`
}

// Hint describes a forced-cell suggestion for the UI.
type Hint struct {
	Message string      `json:"message,omitempty"`
	Cells   []CellCoord `json:"cells,omitempty"`
}

// Puzzle is a persisted Queens puzzle with metadata.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Size       int        `json:"n"`
	Definition Definition `json:"definition"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Size      int    `json:"n"`
	CreatedAt int64  `json:"createdAt"`
}
