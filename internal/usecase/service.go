package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/engine"
	"svw.info/queens/internal/ports"
)

// Service wires the solver, generator, validator, hinter, and storage, and
// owns the registry of live play sessions. The rule engine itself is
// single-threaded; the service mutex serializes player actions so each
// session sees one mutation at a time.
type Service struct {
	Solver    ports.PlacementSolver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage

	mu       sync.Mutex
	sessions map[string]*engine.Board
}

func NewService(s ports.PlacementSolver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{
		Solver:    s,
		Generator: g,
		Validator: v,
		Hinter:    h,
		Storage:   st,
		sessions:  make(map[string]*engine.Board),
	}
}

var (
	errNotConfigured  = errors.New("usecase dependency not configured")
	ErrUnknownSession = errors.New("unknown session")
)

func (u *Service) SolvePlacement(ctx context.Context, n int) ([]domain.CellCoord, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, n)
}

func (u *Service) Generate(ctx context.Context, seed int64, n int) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, n)
}

func (u *Service) Validate(ctx context.Context, def *domain.Definition) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, def)
}

// Sessions

// NewSession validates the definition and starts a play session on it.
func (u *Service) NewSession(ctx context.Context, def *domain.Definition) (string, error) {
	if u.Validator != nil {
		ok, _, err := u.Validator.Validate(ctx, def)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", domain.ErrMalformedDefinition
		}
	}
	b, err := engine.New(def)
	if err != nil {
		return "", err
	}
	id := strconv.FormatInt(time.Now().UnixNano(), 10)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sessions[id] = b
	return id, nil
}

// EndSession discards a session's board state.
func (u *Service) EndSession(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.sessions, id)
}

func (u *Service) session(id string) (*engine.Board, error) {
	b, ok := u.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return b, nil
}

// Place applies a queen placement in a session.
func (u *Service) Place(ctx context.Context, id string, r, c int) (domain.Move, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, err := u.session(id)
	if err != nil {
		return domain.Move{}, err
	}
	return b.PlaceQueen(r, c)
}

// Remove takes a queen off a session board.
func (u *Service) Remove(ctx context.Context, id string, r, c int) (domain.Move, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, err := u.session(id)
	if err != nil {
		return domain.Move{}, err
	}
	return b.RemoveQueen(r, c)
}

// Cross toggles a scratch-mark in a session.
func (u *Service) Cross(ctx context.Context, id string, r, c int) (domain.Move, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, err := u.session(id)
	if err != nil {
		return domain.Move{}, err
	}
	return b.ToggleCross(r, c)
}

// Query evaluates the four placement rules in a session without mutating it.
func (u *Service) Query(ctx context.Context, id string, r, c int) (domain.Checks, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, err := u.session(id)
	if err != nil {
		return domain.Checks{}, err
	}
	return b.QueryPlacement(r, c)
}

// State snapshots a session's marks for the presentation layer.
func (u *Service) State(ctx context.Context, id string) ([][]domain.CellMark, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, err := u.session(id)
	if err != nil {
		return nil, false, err
	}
	n := b.Size()
	marks := make([][]domain.CellMark, n)
	for r := 0; r < n; r++ {
		marks[r] = make([]domain.CellMark, n)
		for c := 0; c < n; c++ {
			m, err := b.MarkAt(r, c)
			if err != nil {
				return nil, false, err
			}
			marks[r][c] = m
		}
	}
	return marks, b.Solved(), nil
}

// Hint suggests a forced cell for a session.
func (u *Service) Hint(ctx context.Context, id string) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	b, err := u.session(id)
	if err != nil {
		return domain.Hint{}, false, err
	}
	return u.Hinter.Hint(ctx, b)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
