// Package document reads source documents and composes imposed output.
//
// The imposition code only talks to the interfaces in this file. PDF
// implements them on top of pdfcpu and gofpdf.
package document

import (
	"errors"
	"fmt"
	"io"
)

// ErrEmptyDocument is returned when a document has no pages.
var ErrEmptyDocument = errors.New("document has no pages")

// LoadError wraps any failure to read the source bytes.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load document: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Page is a page of a source document. Width and Height are the intrinsic
// size in points, as the page is displayed.
type Page struct {
	Index  int     `json:"index" yaml:"index"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Rect is an axis aligned rectangle in points, measured from the bottom-left
// corner of the output page.
type Rect struct {
	X, Y float64
	W, H float64
}

// Center returns the centre point of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// LineStyle describes a stroked line.
type LineStyle struct {
	Width float64
	// Gray is the stroke colour, 0 (black) to 255 (white).
	Gray int
	// Dash is the dash pattern in points; empty for a solid line.
	Dash []float64
}

// Source is a loaded document.
type Source interface {
	PageCount() int
	Page(i int) (Page, error)
}

// Sink is an output document being composed page by page. Drawing
// operations apply to the page added last.
type Sink interface {
	AddPage(width, height float64) error
	// DrawPage draws a source page stretched into rect, turned by rotation
	// degrees (0 or 180) about the centre of rect.
	DrawPage(page Page, rect Rect, rotation int) error
	Line(x0, y0, x1, y1 float64, style LineStyle) error
	Output(w io.Writer) error
}

// Backend loads sources and creates sinks that can draw their pages.
type Backend interface {
	Load(data []byte) (Source, error)
	Create(src Source) (Sink, error)
}

// Optimizer is implemented by backends that can shrink composed output.
type Optimizer interface {
	Optimize(data []byte) ([]byte, error)
}
