package handlers

import (
	"net/http"

	"github.com/pixelgate/pixelgate/internal/models"
)

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
