package display

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/pixelgate/pixelgate/internal/upload"
)

// FileStore writes each blob to Dir/Stem plus an extension matching the
// blob's content type, and returns the written path as its reference.
type FileStore struct {
	Dir  string
	Stem string
}

func (s FileStore) CreateObjectURL(b upload.Blob) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, s.Stem+extensionFor(b.ContentType))
	if err := os.WriteFile(path, b.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return path, nil
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}

	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}

	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
