package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ikkim/foodgram-backend/pkg/logger"
)

// LocalStorage keeps images on disk under root and serves them at baseURL
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{
		root:    root,
		baseURL: baseURL,
	}
}

func (s *LocalStorage) Save(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := objectKey(folder, filename)
	path := filepath.Join(s.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("Failed to write image to disk", err, map[string]interface{}{
			"path": path,
		})
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	logger.Debug("Image written to disk", map[string]interface{}{
		"path":         path,
		"content_type": contentType,
		"size":         len(data),
	})
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// Delete removes the file behind url; a missing file is not an error
func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := keyFromURL(s.baseURL, url)
	if err != nil {
		return err
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
