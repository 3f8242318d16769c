package domain

// ZoneID names one color zone. Opaque to the rule engine; display colors
// live entirely in the view layer.
type ZoneID int

// CellMark is the tri-state content of one board cell.
type CellMark int

const (
	Empty CellMark = iota
	Queen
	Cross // player scratch-mark, never consulted by the rules
)

func (m CellMark) String() string {
	switch m {
	case Queen:
		return "queen"
	case Cross:
		return "cross"
	default:
		return "empty"
	}
}
