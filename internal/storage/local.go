package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes blobs under a filesystem root that is served read-only
// at the static mount prefix.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: filepath.Clean(root)}, nil
}

func (s *LocalStore) Put(_ context.Context, name, _ string, data []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid blob name %q", name)
	}
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read storage dir: %w", err)
	}

	var objects []ObjectInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat blob %s: %w", entry.Name(), err)
		}
		mod := info.ModTime()
		objects = append(objects, ObjectInfo{
			Key:          entry.Name(),
			Size:         info.Size(),
			LastModified: &mod,
		})
	}
	return objects, nil
}

var _ Store = (*LocalStore)(nil)
