package selection

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pixelgate/pixelgate/internal/upload"
)

// Selection is a fixed list of files read ahead of submission.
type Selection []upload.File

func (s Selection) Files() []upload.File {
	return s
}

// FromPaths reads each path into a File. No paths means an empty selection.
func FromPaths(paths ...string) (Selection, error) {
	sel := make(Selection, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sel = append(sel, upload.File{
			Name:        filepath.Base(path),
			ContentType: ContentType(path, data),
			Data:        data,
		})
	}
	return sel, nil
}

// ContentType guesses a file's type from its extension, falling back to
// sniffing the first bytes.
func ContentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	if len(data) == 0 {
		return ""
	}
	return http.DetectContentType(data)
}
