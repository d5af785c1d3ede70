package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/foldbook/internal/booklet"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/lehigh-university-libraries/foldbook/internal/models"
)

var unsafeID = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// HandleUpload imposes an uploaded PDF and stores the result as a job.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := h.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, fmt.Sprintf("File too large (max %dMB)", h.cfg.MaxUploadMB), http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if int64(len(fileData)) > limit {
		h.writeError(w, fmt.Sprintf("File too large (max %dMB)", h.cfg.MaxUploadMB), http.StatusRequestEntityTooLarge)
		return
	}

	opts, err := h.bookletOptions(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.booklets.Generate(r.Context(), fileData, opts)
	if err != nil {
		h.writeError(w, "Failed to impose "+header.Filename+": "+err.Error(), statusFor(err))
		return
	}

	// Use filename (without extension) as job name, with a uuid for uniqueness
	baseFilename := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	baseFilename = strings.Trim(unsafeID.ReplaceAllString(baseFilename, "-"), "-")
	if baseFilename == "" {
		baseFilename = "booklet"
	}
	jobID := baseFilename + "_" + uuid.NewString()

	job := &models.Job{
		ID:            jobID,
		Filename:      header.Filename,
		OutputName:    booklet.OutputName(header.Filename, opts.Format),
		Format:        opts.Format.String(),
		Pages:         opts.Pages,
		SpineGuide:    opts.SpineGuide,
		SourcePages:   result.SourcePages,
		Selection:     result.Selection,
		Sheets:        result.Sheets(),
		Size:          len(result.PDF),
		DownloadURL:   "/api/jobs/" + jobID + "/download",
		Plan:          result.Plan,
		CreatedAt:     time.Now(),
		ElapsedMillis: result.Duration.Milliseconds(),
		PDF:           result.PDF,
	}
	h.jobStore.Set(jobID, job)
	slog.Info("Job created", "job_id", jobID, "format", job.Format, "sheets", job.Sheets)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, job.Summary())
}

// bookletOptions reads the form fields, falling back to the server config.
func (h *Handler) bookletOptions(r *http.Request) (booklet.Options, error) {
	size := r.FormValue("format")
	orientation := r.FormValue("orientation")
	if size == "" {
		size = h.cfg.Format
	}
	if orientation == "" {
		orientation = h.cfg.Orientation
	}
	format, err := imposition.Resolve(size, orientation)
	if err != nil {
		return booklet.Options{}, err
	}

	opts := booklet.Options{
		Format:     format,
		Pages:      r.FormValue("pages"),
		SpineGuide: h.cfg.SpineGuide,
		Optimize:   h.cfg.Optimize,
	}
	if v := r.FormValue("spine_guide"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return booklet.Options{}, fmt.Errorf("invalid spine_guide %q", v)
		}
		opts.SpineGuide = b
	}
	return opts, nil
}
