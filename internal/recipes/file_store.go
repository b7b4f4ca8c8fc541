package recipes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	recipesFile  = "receipts.json"
	commentsFile = "comments.json"
)

// ErrCorrupt marks a data file that exists but does not hold a JSON array.
var ErrCorrupt = errors.New("corrupt data file")

// FileStore keeps recipes and comments as indented JSON arrays under dir.
// Every append rewrites the whole file, so appending to a corrupt file
// replaces its contents. The mutex only serialises writers inside this process.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) ListRecipes() ([]Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadArray[Recipe](s.path(recipesFile))
}

func (s *FileStore) AppendRecipe(r Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendArray(s.dir, s.path(recipesFile), r)
}

func (s *FileStore) ListComments() ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadArray[Comment](s.path(commentsFile))
}

func (s *FileStore) AppendComment(c Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendArray(s.dir, s.path(commentsFile), c)
}

func (s *FileStore) path(name string) string { return filepath.Join(s.dir, name) }

// loadArray reads a JSON array. A missing or empty file is an empty
// collection; anything unparsable is an empty collection plus ErrCorrupt.
func loadArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return []T{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}, fmt.Errorf("%s: %w: %v", filepath.Base(path), ErrCorrupt, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func appendArray[T any](dir, path string, item T) error {
	items, err := loadArray[T](path)
	switch {
	case errors.Is(err, ErrCorrupt):
		log.Printf("⚠️ %v, starting %s over", err, filepath.Base(path))
	case err != nil:
		return fmt.Errorf("refusing to rewrite: %w", err)
	}
	items = append(items, item)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}
	return saveArray(path, items)
}

func saveArray[T any](path string, items []T) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
