package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes attachments under a directory that the HTTP server
// exposes at URLPrefix. It is the fallback when no object store is configured.
type LocalStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", root, err)
	}
	return &LocalStorage{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("object key cannot be empty")
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir for %s: %w", key, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	return s.urlPrefix + "/" + strings.TrimLeft(filepath.ToSlash(filepath.Clean("/"+key)), "/"), nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) Root() string {
	return s.root
}
