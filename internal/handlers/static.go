package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static
var staticFiles embed.FS

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filepath := strings.TrimPrefix(r.URL.Path, "/static/")
	filepath = strings.TrimPrefix(filepath, "/")
	if filepath == "" {
		filepath = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := fs.ReadFile(staticFiles, "static/"+filepath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filepath, ".html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	if _, err := w.Write(data); err != nil {
		h.writeError(w, "Unable to write response", http.StatusInternalServerError)
	}
}
