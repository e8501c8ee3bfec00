package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrForeignURL = errors.New("url does not belong to this storage")

// ImageStorage persists recipe images and returns their public URL
type ImageStorage interface {
	Save(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// objectKey builds "<folder>/<uuid><ext>" from the original filename
func objectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), ext)
}

// keyFromURL strips baseURL from url and returns the object key
func keyFromURL(baseURL, url string) (string, error) {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", ErrForeignURL
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", ErrForeignURL
	}
	return key, nil
}
