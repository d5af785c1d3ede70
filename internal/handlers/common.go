package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/foldbook/internal/booklet"
	"github.com/lehigh-university-libraries/foldbook/internal/config"
	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/lehigh-university-libraries/foldbook/internal/models"
	"github.com/lehigh-university-libraries/foldbook/internal/selection"
	"github.com/lehigh-university-libraries/foldbook/internal/storage"
)

type Handler struct {
	jobStore *storage.JobStore
	booklets *booklet.Service
	cfg      config.Config
}

func New(cfg config.Config, booklets *booklet.Service) *Handler {
	return &Handler{
		jobStore: storage.New(cfg.MaxJobs),
		booklets: booklets,
		cfg:      cfg,
	}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/impose", h.HandleUpload)
	mux.HandleFunc("/api/jobs", h.HandleJobs)
	mux.HandleFunc("/api/jobs/", h.HandleJobDetail)
	mux.HandleFunc("/api/plan", h.HandlePlan)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	mux.HandleFunc("/", h.HandleStatic)
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Warn(message, "status", code)
	}
	http.Error(w, message, code)
}

// statusFor maps booklet errors caused by the request to 400.
func statusFor(err error) int {
	var loadErr *document.LoadError
	var selErr *selection.EmptySelectionError
	switch {
	case errors.As(err, &loadErr), errors.As(err, &selErr), errors.Is(err, document.ErrEmptyDocument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Job helpers
func (h *Handler) getJobOrError(w http.ResponseWriter, jobID string) (*models.Job, bool) {
	job, exists := h.jobStore.Get(jobID)
	if !exists {
		h.writeError(w, "Job not found", http.StatusNotFound)
		return nil, false
	}
	return job, true
}
