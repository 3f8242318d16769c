package solver

import (
	"context"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/ports"
)

// Counter adapts CountSolutions to the ports.SolutionCounter interface.
type Counter struct{}

func NewCounter() *Counter { return &Counter{} }

func (*Counter) Count(ctx context.Context, def *domain.Definition, limit int) (int, ports.Stats, error) {
	return CountSolutions(ctx, def, limit)
}
