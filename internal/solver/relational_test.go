package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"svw.info/queens/internal/domain"
)

func TestRelationalSolveSmall(t *testing.T) {
	s := NewRelationalSolver()
	for _, n := range []int{1, 4, 5} {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		qs, st, err := s.Solve(ctx, n)
		cancel()
		if err != nil {
			t.Fatalf("Solve(%d) failed: %v (dur=%v)", n, err, st.Duration)
		}
		checkPlacement(t, qs, n)
	}
}

func TestRelationalUnsatisfiable(t *testing.T) {
	s := NewRelationalSolver()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, _, err := s.Solve(ctx, 2); !errors.Is(err, domain.ErrUnsatisfiable) {
		t.Fatalf("want ErrUnsatisfiable, got %v", err)
	}
}
