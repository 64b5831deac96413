package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pixelgate/pixelgate/internal/engine"
)

const (
	msgMissingImage    = "No se proporcionó ninguna imagen."
	msgEmptyFilename   = "Nombre de archivo vacío."
	msgUnsupported     = "Formato de imagen no permitido. Solo JPG, JPEG o PNG."
	msgUnreadable      = "No se pudo leer el archivo."
	msgEngineDown      = "No se pudo conectar al motor (engine)."
	msgEngineTimeout   = "Tiempo de espera agotado al contactar con engine."
	msgEngineFailed    = "Error inesperado al contactar con engine."
	msgEngineRejected  = "El motor (engine) devolvió un error."
	processedFilename  = "procesada.jpg"
	processedMediaType = "image/jpeg"
)

// HandleProcess validates the uploaded image, forwards it to the engine and
// streams back the processed JPEG.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.cfg.MaxUploadBytes {
		h.rejectTooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		switch {
		case isTooLarge(err):
			h.rejectTooLarge(w)
		case errors.Is(err, http.ErrMissingFile) && r.MultipartForm != nil && len(r.MultipartForm.Value["image"]) > 0:
			// a file input submitted with nothing chosen arrives without a filename
			h.metrics.ObserveProcess("empty_filename")
			h.writeError(w, http.StatusBadRequest, msgEmptyFilename, "")
		default:
			h.metrics.ObserveProcess("missing_image")
			h.writeError(w, http.StatusBadRequest, msgMissingImage, "")
		}
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.metrics.ObserveProcess("empty_filename")
		h.writeError(w, http.StatusBadRequest, msgEmptyFilename, "")
		return
	}

	if !h.cfg.Allowed(header.Filename) {
		h.metrics.ObserveProcess("unsupported_format")
		h.writeError(w, http.StatusUnsupportedMediaType, msgUnsupported, "")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		h.metrics.ObserveProcess("unreadable")
		h.writeError(w, http.StatusUnprocessableEntity, msgUnreadable, err.Error())
		return
	}

	start := time.Now()
	processed, err := h.processor.Process(r.Context(), image)
	h.metrics.ObserveEngine(time.Since(start))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.metrics.ObserveProcess("ok")
	w.Header().Set("Content-Type", processedMediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, processedFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(processed); err != nil {
		slog.Error("Unable to write processed image", "err", err)
	}
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var statusErr *engine.StatusError
	switch {
	case errors.As(err, &statusErr):
		h.metrics.ObserveProcess("engine_rejected")
		h.writeError(w, statusErr.Code, msgEngineRejected, statusErr.Body)
	case errors.Is(err, engine.ErrUnavailable):
		h.metrics.ObserveProcess("engine_unavailable")
		h.writeError(w, http.StatusServiceUnavailable, msgEngineDown, "")
	case errors.Is(err, engine.ErrTimeout):
		h.metrics.ObserveProcess("engine_timeout")
		h.writeError(w, http.StatusGatewayTimeout, msgEngineTimeout, "")
	default:
		h.metrics.ObserveProcess("engine_error")
		h.writeError(w, http.StatusInternalServerError, msgEngineFailed, err.Error())
	}
}

func (h *Handler) rejectTooLarge(w http.ResponseWriter) {
	h.metrics.ObserveProcess("too_large")
	h.writeError(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Archivo demasiado grande. Máximo %dMB.", h.cfg.MaxUploadMB()), "")
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// older multipart readers flatten the error to text
	return strings.Contains(err.Error(), "request body too large")
}
