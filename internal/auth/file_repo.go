package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository reads the admin roster from a JSON array file.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) LoadAll() ([]Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadUnlocked()
}

func (r *FileRepository) loadUnlocked() ([]Admin, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Admin{}, nil
		}
		return nil, fmt.Errorf("read admins: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Admin{}, nil
	}
	var admins []Admin
	if err := json.Unmarshal(data, &admins); err != nil {
		return []Admin{}, fmt.Errorf("parse admins %s: %w", filepath.Base(r.path), err)
	}
	return admins, nil
}
