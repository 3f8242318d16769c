package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"svw.info/queens/internal/domain"
)

// FS persists one puzzle per JSON file, bucketed by grid size
// (dir/8x8/<id>.json), with a legacy flat layout still readable.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func sizeDir(n int) string {
	return fmt.Sprintf("%dx%d", n, n)
}

func (s *FS) pathFor(id string, n int) string {
	return filepath.Join(s.dir, sizeDir(n), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	if p.Size < 1 || p.Definition.Size != p.Size {
		return domain.ErrMalformedDefinition
	}
	target := s.pathFor(p.ID, p.Size)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, os.ErrNotExist
	}
	var data []byte
	for _, dir := range s.bucketDirs() {
		path := filepath.Join(dir, id+".json")
		if _, statErr := os.Stat(path); statErr == nil {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			data = b
			break
		}
	}
	if data == nil {
		// legacy flat layout
		b, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
		if err != nil {
			return nil, os.ErrNotExist
		}
		data = b
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out.Size == 0 {
		out.Size = out.Definition.Size
	}
	return &out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	type m struct {
		ID        string `json:"id"`
		Name      string `json:"name,omitempty"`
		Size      int    `json:"n"`
		CreatedAt int64  `json:"createdAt"`
	}

	var out []domain.PuzzleMeta
	scan := func(dir string) error {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			out = append(out, domain.PuzzleMeta{
				ID:        mm.ID,
				Name:      mm.Name,
				Size:      mm.Size,
				CreatedAt: mm.CreatedAt,
			})
		}
		return nil
	}

	for _, dir := range s.bucketDirs() {
		if err := scan(dir); err != nil {
			return nil, err
		}
	}
	if err := scan(s.dir); err != nil { // legacy flat files
		return nil, err
	}
	return out, nil
}

// bucketDirs lists existing size buckets (subdirectories named like "8x8").
func (s *FS) bucketDirs() []string {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		var a, b int
		if _, err := fmt.Sscanf(name, "%dx%d", &a, &b); err == nil && a == b && a > 0 {
			out = append(out, filepath.Join(s.dir, name))
		}
	}
	return out
}
