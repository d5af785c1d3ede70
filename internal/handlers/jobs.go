package handlers

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/foldbook/internal/models"
)

func (h *Handler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jobs := h.jobStore.List()
		jobList := make([]*models.Job, 0, len(jobs))
		for _, job := range jobs {
			jobList = append(jobList, job.Summary())
		}
		h.writeJSON(w, jobList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleJobDetail serves /api/jobs/{id} and /api/jobs/{id}/download.
func (h *Handler) HandleJobDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	jobID, action, _ := strings.Cut(rest, "/")

	job, ok := h.getJobOrError(w, jobID)
	if !ok {
		return
	}

	switch {
	case action == "download" && r.Method == http.MethodGet:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", contentDisposition(job.OutputName))
		w.Header().Set("Content-Length", strconv.Itoa(len(job.PDF)))
		if _, err := w.Write(job.PDF); err != nil {
			h.writeError(w, "Unable to write PDF: "+err.Error(), http.StatusInternalServerError)
		}
	case action != "":
		h.writeError(w, "Not found", http.StatusNotFound)
	case r.Method == http.MethodGet:
		h.writeJSON(w, job)
	case r.Method == http.MethodDelete:
		h.jobStore.Delete(jobID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// contentDisposition quotes or encodes filename as needed.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
