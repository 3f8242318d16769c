package ports

import (
	"context"
	"time"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/engine"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// PlacementSolver finds one non-attacking queen placement for an n×n grid:
// one queen per row, all columns distinct, no adjacent-row diagonal touch.
type PlacementSolver interface {
	Solve(ctx context.Context, n int) ([]domain.CellCoord, Stats, error)
}

// SolutionCounter counts full-board solutions for a definition, stopping
// early at limit. Counting to 2 answers the uniqueness question.
type SolutionCounter interface {
	Count(ctx context.Context, def *domain.Definition, limit int) (int, Stats, error)
}

// Generator creates new puzzles with exactly one valid solution.
type Generator interface {
	Generate(ctx context.Context, seed int64, n int) (*domain.Puzzle, Stats, error)
}

// Validator checks that a definition's zones partition the grid exactly and
// that every zone is 4-connected.
type Validator interface {
	Validate(ctx context.Context, def *domain.Definition) (ok bool, bad []domain.CellCoord, err error)
}

// Hinter suggests the next forced cell for an in-progress board.
type Hinter interface {
	Hint(ctx context.Context, b *engine.Board) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
