package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes derivatives under a single root directory and serves
// them back through the /api/uploads read-only fetch. The enabled flag is
// resolved once at startup; a read-only deployment turns it off and every
// write fails with ErrUnavailable instead of surprising mid-request.
type LocalStore struct {
	root    string
	baseURL string
	enabled bool
}

func NewLocalStore(root string, enabled bool) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	return &LocalStore{
		root:    abs,
		baseURL: "/api/uploads",
		enabled: enabled,
	}, nil
}

func (s *LocalStore) Write(ctx context.Context, in WriteInput) (WriteResult, error) {
	if !s.enabled {
		return WriteResult{}, fmt.Errorf("%w: local storage disabled on this deployment", ErrUnavailable)
	}
	if !in.Purpose.Valid() {
		return WriteResult{}, fmt.Errorf("invalid storage purpose %q", in.Purpose)
	}

	originalKey, thumbKey := keyPair(in.UserID, in.Purpose)

	dir := filepath.Join(s.root, filepath.Dir(filepath.FromSlash(originalKey)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WriteResult{}, fmt.Errorf("%w: mkdir: %v", ErrUnavailable, err)
	}

	for key, data := range map[string][]byte{originalKey: in.Display, thumbKey: in.Thumb} {
		path := filepath.Join(s.root, filepath.FromSlash(key))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return WriteResult{}, fmt.Errorf("%w: write %s: %v", ErrUnavailable, key, err)
		}
	}

	return WriteResult{
		OriginalURL: s.baseURL + "/" + originalKey,
		OriginalKey: originalKey,
		ThumbURL:    s.baseURL + "/" + thumbKey,
		ThumbKey:    thumbKey,
	}, nil
}

// Resolve maps a retrieval key onto an absolute path strictly inside the
// storage root. Any traversal attempt is rejected.
func (s *LocalStore) Resolve(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", os.ErrNotExist
	}
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if path != s.root && !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", os.ErrPermission
	}
	return path, nil
}
