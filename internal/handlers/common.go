package handlers

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/pixelgate/pixelgate/internal/config"
	"github.com/pixelgate/pixelgate/internal/metrics"
	"github.com/pixelgate/pixelgate/internal/models"
	"github.com/pixelgate/pixelgate/internal/web"
)

// Processor turns an uploaded image into the processed image.
type Processor interface {
	Process(ctx context.Context, image []byte) ([]byte, error)
}

type Handler struct {
	cfg       config.ServerConfig
	processor Processor
	metrics   *metrics.Metrics
	assets    fs.FS
}

func New(cfg config.ServerConfig, processor Processor, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:       cfg,
		processor: processor,
		metrics:   m,
		assets:    web.Static(),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message, detail string) {
	slog.Error(message, "status", code, "detail", detail)
	h.writeJSON(w, code, models.ErrorResponse{Error: message, Detail: detail})
}
