package handlers

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// HandleIndex serves the upload page.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.assets, "index.html")
	if err != nil {
		slog.Error("Unable to read index page", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		slog.Error("Unable to write index page", "err", err)
	}
}

// StaticHandler serves the embedded assets under /static/.
func (h *Handler) StaticHandler() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(h.assets)))
}
