// Package documenttest provides an in-memory document.Backend that records
// what is drawn.
package documenttest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/foldbook/internal/document"
)

// Draw records one DrawPage call.
type Draw struct {
	Page     int
	Rect     document.Rect
	Rotation int
}

// Line records one Line call.
type Line struct {
	X0, Y0, X1, Y1 float64
	Style          document.LineStyle
}

// OutputPage is one page added to a Sink.
type OutputPage struct {
	Width, Height float64
	Draws         []Draw
	Lines         []Line
}

// Source is a fake source document.
type Source struct {
	Pages []document.Page
}

func (s *Source) PageCount() int {
	return len(s.Pages)
}

func (s *Source) Page(i int) (document.Page, error) {
	if i < 0 || i >= len(s.Pages) {
		return document.Page{}, fmt.Errorf("page index %d out of range", i)
	}
	return s.Pages[i], nil
}

// NewSource returns a source of n pages of the same size.
func NewSource(n int, width, height float64) *Source {
	s := &Source{}
	for i := 0; i < n; i++ {
		s.Pages = append(s.Pages, document.Page{Index: i, Width: width, Height: height})
	}
	return s
}

// Sink records every call. Output writes the recorded pages as JSON.
type Sink struct {
	Pages []OutputPage
}

func (s *Sink) AddPage(width, height float64) error {
	s.Pages = append(s.Pages, OutputPage{Width: width, Height: height})
	return nil
}

func (s *Sink) current() (*OutputPage, error) {
	if len(s.Pages) == 0 {
		return nil, errors.New("no page added")
	}
	return &s.Pages[len(s.Pages)-1], nil
}

func (s *Sink) DrawPage(page document.Page, rect document.Rect, rotation int) error {
	p, err := s.current()
	if err != nil {
		return err
	}
	p.Draws = append(p.Draws, Draw{Page: page.Index, Rect: rect, Rotation: rotation})
	return nil
}

func (s *Sink) Line(x0, y0, x1, y1 float64, style document.LineStyle) error {
	p, err := s.current()
	if err != nil {
		return err
	}
	p.Lines = append(p.Lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Style: style})
	return nil
}

func (s *Sink) Output(w io.Writer) error {
	return json.NewEncoder(w).Encode(s.Pages)
}

// Backend hands out Source for any input; the bytes are ignored. LoadErr,
// when set, is returned by Load instead.
type Backend struct {
	Source  *Source
	LoadErr error

	// Sinks holds every sink created, in order.
	Sinks []*Sink
}

func (b *Backend) Load(data []byte) (document.Source, error) {
	if b.LoadErr != nil {
		return nil, &document.LoadError{Err: b.LoadErr}
	}
	return b.Source, nil
}

func (b *Backend) Create(src document.Source) (document.Sink, error) {
	sink := &Sink{}
	b.Sinks = append(b.Sinks, sink)
	return sink, nil
}

// Last returns the most recently created sink.
func (b *Backend) Last() *Sink {
	if len(b.Sinks) == 0 {
		return nil
	}
	return b.Sinks[len(b.Sinks)-1]
}
