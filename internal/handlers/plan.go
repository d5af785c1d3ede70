package handlers

import (
	"net/http"
	"strconv"

	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/lehigh-university-libraries/foldbook/internal/planio"
	"github.com/lehigh-university-libraries/foldbook/internal/selection"
)

// HandlePlan returns the imposition plan for a page count without a
// document: /api/plan?count=20&format=a7&orientation=portrait&pages=1-8
// An optional output parameter selects yaml, text or csv instead of JSON.
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	count, err := strconv.Atoi(q.Get("count"))
	if err != nil {
		h.writeError(w, "count must be a positive integer", http.StatusBadRequest)
		return
	}
	if err := h.cfg.CheckPageCount(count); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	size, orientation := q.Get("format"), q.Get("orientation")
	if size == "" {
		size = h.cfg.Format
	}
	if orientation == "" {
		orientation = h.cfg.Orientation
	}
	format, err := imposition.Resolve(size, orientation)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sel, err := selection.Select(q.Get("pages"), count)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	output, err := planio.ParseFormat(q.Get("output"))
	if err != nil || output == planio.Parquet {
		h.writeError(w, "output must be json, yaml, text or csv", http.StatusBadRequest)
		return
	}
	if q.Get("output") == "" {
		output = planio.JSON
	}

	plan, err := imposition.Build(format, len(sel))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	contentTypes := map[planio.Format]string{
		planio.JSON: "application/json",
		planio.YAML: "application/yaml",
		planio.Text: "text/plain; charset=utf-8",
		planio.CSV:  "text/csv",
	}
	w.Header().Set("Content-Type", contentTypes[output])
	if err := planio.Write(w, output, plan, sel); err != nil {
		h.writeError(w, "Unable to write plan: "+err.Error(), http.StatusInternalServerError)
	}
}
