package booklet

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/lehigh-university-libraries/foldbook/internal/document/documenttest"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/lehigh-university-libraries/foldbook/internal/selection"
)

func fakeService(pages int) (*Service, *documenttest.Backend) {
	backend := &documenttest.Backend{Source: documenttest.NewSource(pages, imposition.A4Short, imposition.A4Long)}
	return NewService(backend), backend
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		pages       int
		opts        Options
		wantSheets  int
		wantOutput  int
		wantSelPage []int
	}{
		{
			name:        "a6 twelve pages",
			pages:       12,
			opts:        Options{Format: imposition.A6},
			wantSheets:  2,
			wantOutput:  3,
			wantSelPage: selection.All(12),
		},
		{
			name:        "a7 selection",
			pages:       30,
			opts:        Options{Format: imposition.A7Portrait, Pages: "3-1,10"},
			wantSheets:  1,
			wantOutput:  1,
			wantSelPage: []int{2, 1, 0, 9},
		},
		{
			name:        "a7 landscape full block",
			pages:       16,
			opts:        Options{Format: imposition.A7Landscape, SpineGuide: true},
			wantSheets:  1,
			wantOutput:  2,
			wantSelPage: selection.All(16),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, backend := fakeService(tt.pages)
			result, err := svc.Generate(context.Background(), []byte("%PDF"), tt.opts)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if result.Sheets() != tt.wantSheets {
				t.Errorf("Expected %d sheets, got %d", tt.wantSheets, result.Sheets())
			}
			if diff := cmp.Diff(tt.wantSelPage, result.Selection); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
			if got := len(backend.Last().Pages); got != tt.wantOutput {
				t.Errorf("Expected %d output pages, got %d", tt.wantOutput, got)
			}
			if len(result.PDF) == 0 {
				t.Error("Expected output bytes")
			}
			if result.SourcePages != tt.pages {
				t.Errorf("Expected %d source pages, got %d", tt.pages, result.SourcePages)
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	ctx := context.Background()

	svc, _ := fakeService(0)
	if _, err := svc.Generate(ctx, nil, Options{}); !errors.Is(err, document.ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}

	svc, _ = fakeService(5)
	_, err := svc.Generate(ctx, nil, Options{Pages: "9-12"})
	var selErr *selection.EmptySelectionError
	if !errors.As(err, &selErr) {
		t.Errorf("Expected EmptySelectionError, got %v", err)
	}

	broken := NewService(&documenttest.Backend{LoadErr: errors.New("bad xref")})
	_, err = broken.Generate(ctx, nil, Options{})
	var loadErr *document.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("Expected LoadError, got %v", err)
	}

	svc, _ = fakeService(40)
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := svc.Generate(cancelled, nil, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestGenerateOptimizeWithoutOptimizer(t *testing.T) {
	svc, _ := fakeService(4)
	if _, err := svc.Generate(context.Background(), nil, Options{Format: imposition.A6, Optimize: true}); err != nil {
		t.Errorf("Expected optimize to be skipped, got %v", err)
	}
}

func TestGeneratePDF(t *testing.T) {
	var sample bytes.Buffer
	if err := document.Sample(&sample, document.SampleOptions{Count: 20}); err != nil {
		t.Fatal(err)
	}

	svc := NewPDFService()
	result, err := svc.Generate(context.Background(), sample.Bytes(), Options{
		Format:     imposition.A7Portrait,
		SpineGuide: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out, err := document.NewPDF().Load(result.PDF)
	if err != nil {
		t.Fatalf("Booklet does not load: %v", err)
	}
	// one duplex sheet and one front-only sheet
	if out.PageCount() != 3 {
		t.Errorf("Expected 3 output pages, got %d", out.PageCount())
	}
	p, _ := out.Page(0)
	if p.Width < p.Height {
		t.Errorf("Expected a landscape sheet, got %.2fx%.2f", p.Width, p.Height)
	}
}

func TestInspect(t *testing.T) {
	svc, _ := fakeService(20)
	in, err := svc.Inspect(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Pages) != 20 || len(in.Selection) != 20 {
		t.Fatalf("Expected 20 pages, got %d (%d selected)", len(in.Pages), len(in.Selection))
	}

	want := []FormatUsage{
		{Format: "a7-portrait", Sheets: 2, PrintedSides: 3},
		{Format: "a7-landscape", Sheets: 2, PrintedSides: 3},
		{Format: "a6", Sheets: 3, PrintedSides: 5},
	}
	if diff := cmp.Diff(want, in.Formats); diff != "" {
		t.Errorf("format usage mismatch (-want +got):\n%s", diff)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input  string
		format imposition.Format
		want   string
	}{
		{"notes.pdf", imposition.A7Portrait, "notes-a7-portrait-booklet.pdf"},
		{"/tmp/zine.final.PDF", imposition.A6, "zine.final-a6-booklet.pdf"},
		{"scan", imposition.A7Landscape, "scan-a7-landscape-booklet.pdf"},
		{"", imposition.A6, "document-a6-booklet.pdf"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.input, tt.format); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
