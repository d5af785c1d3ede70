package models

import (
	"time"

	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
)

// Job is a booklet imposed through the web interface
type Job struct {
	ID            string           `json:"id"`
	Filename      string           `json:"filename"`
	OutputName    string           `json:"output_name"`
	Format        string           `json:"format"`
	Pages         string           `json:"pages,omitempty"`
	SpineGuide    bool             `json:"spine_guide"`
	SourcePages   int              `json:"source_pages"`
	Selection     []int            `json:"selection"`
	Sheets        int              `json:"sheets"`
	Size          int              `json:"size"`
	DownloadURL   string           `json:"download_url"`
	Plan          *imposition.Plan `json:"plan,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	ElapsedMillis int64            `json:"elapsed_ms"`

	// PDF is the imposed document
	PDF []byte `json:"-"`
}

// Summary returns the job without its plan, for listings
func (j *Job) Summary() *Job {
	s := *j
	s.Plan = nil
	return &s
}
