// Package booklet turns a source document into a printable folding booklet.
package booklet

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/lehigh-university-libraries/foldbook/internal/render"
	"github.com/lehigh-university-libraries/foldbook/internal/selection"
)

type Options struct {
	Format imposition.Format
	// Pages is a page selection expression; empty means every page.
	Pages      string
	SpineGuide bool
	Optimize   bool
}

type Result struct {
	PDF       []byte
	Plan      *imposition.Plan
	Selection []int
	// SourcePages is the page count of the input document.
	SourcePages int
	Duration    time.Duration
}

// Sheets returns the number of sheets of paper the booklet needs.
func (r *Result) Sheets() int {
	return len(r.Plan.Sheets)
}

type Service struct {
	backend document.Backend
}

func NewService(backend document.Backend) *Service {
	return &Service{backend: backend}
}

// NewPDFService returns a Service for PDF documents.
func NewPDFService() *Service {
	return NewService(document.NewPDF())
}

// Generate imposes input and returns the composed output document.
func (s *Service) Generate(ctx context.Context, input []byte, opts Options) (*Result, error) {
	start := time.Now()

	src, err := s.backend.Load(input)
	if err != nil {
		return nil, err
	}
	if src.PageCount() == 0 {
		return nil, document.ErrEmptyDocument
	}

	sel, err := selection.Select(opts.Pages, src.PageCount())
	if err != nil {
		return nil, err
	}

	plan, err := imposition.Build(opts.Format, len(sel))
	if err != nil {
		return nil, fmt.Errorf("plan %s booklet: %w", opts.Format, err)
	}

	sink, err := s.backend.Create(src)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	r := render.New(render.Options{SpineGuide: opts.SpineGuide})
	if err := r.Render(ctx, plan, src, sel, sink); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	var buf bytes.Buffer
	if err := sink.Output(&buf); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	out := buf.Bytes()

	if opts.Optimize {
		if o, ok := s.backend.(document.Optimizer); ok {
			out, err = o.Optimize(out)
			if err != nil {
				return nil, err
			}
		} else {
			slog.Warn("Backend cannot optimize output, skipping")
		}
	}

	result := &Result{
		PDF:         out,
		Plan:        plan,
		Selection:   sel,
		SourcePages: src.PageCount(),
		Duration:    time.Since(start),
	}
	slog.Info("Booklet generated",
		"format", opts.Format,
		"source_pages", result.SourcePages,
		"selected_pages", len(sel),
		"sheets", result.Sheets(),
		"bytes", len(out),
		"duration", result.Duration)
	return result, nil
}

// OutputName derives the booklet file name from the input file name,
// e.g. "notes.pdf" becomes "notes-a7-portrait-booklet.pdf".
func OutputName(input string, format imposition.Format) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	return fmt.Sprintf("%s-%s-booklet.pdf", base, format)
}
