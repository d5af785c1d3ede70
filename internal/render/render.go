// Package render draws an imposition plan into an output document.
package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
)

// SpineStyle is the look of the spine guide.
var SpineStyle = document.LineStyle{Width: 0.5, Gray: 150, Dash: []float64{4, 3}}

type Options struct {
	// SpineGuide draws a dashed line where the booklet's spine will be.
	SpineGuide bool
}

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render draws every sheet of plan into sink, front side first. Effective
// page i of the plan is page selection[i] of src.
func (r *Renderer) Render(ctx context.Context, plan *imposition.Plan, src document.Source, selection []int, sink document.Sink) error {
	if len(selection) != plan.PageCount {
		return fmt.Errorf("plan covers %d pages but %d are selected", plan.PageCount, len(selection))
	}

	layout := plan.Layout
	for i, sheet := range plan.Sheets {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.side(layout, sheet.Front, src, selection, sink); err != nil {
			return fmt.Errorf("sheet %d front: %w", i+1, err)
		}
		if r.opts.SpineGuide {
			if edge, ok := sheet.SpineGuide(); ok {
				cw, ch := layout.CellSize()
				if err := sink.Line(edge.X0*cw, edge.Y0*ch, edge.X1*cw, edge.Y1*ch, SpineStyle); err != nil {
					return fmt.Errorf("sheet %d spine guide: %w", i+1, err)
				}
			}
		}

		if sheet.Duplex() {
			if err := r.side(layout, sheet.Back, src, selection, sink); err != nil {
				return fmt.Errorf("sheet %d back: %w", i+1, err)
			}
		}
		slog.Debug("Rendered sheet", "sheet", i+1, "front", len(sheet.Front), "back", len(sheet.Back))
	}
	return nil
}

func (r *Renderer) side(layout imposition.Layout, slots []imposition.Slot, src document.Source, selection []int, sink document.Sink) error {
	if err := sink.AddPage(layout.SheetWidth, layout.SheetHeight); err != nil {
		return err
	}
	for _, slot := range slots {
		page, err := src.Page(selection[slot.SrcIndex])
		if err != nil {
			return err
		}
		rect := Fit(page, CellRect(layout, slot.Col, slot.Row))
		if err := sink.DrawPage(page, rect, slot.RotateDeg); err != nil {
			return err
		}
	}
	return nil
}

// CellRect returns the rectangle of a grid cell on the sheet.
func CellRect(layout imposition.Layout, col, row int) document.Rect {
	cw, ch := layout.CellSize()
	return document.Rect{X: float64(col) * cw, Y: float64(row) * ch, W: cw, H: ch}
}

// Fit scales page to the largest size that fits in cell while keeping its
// aspect ratio, centred in the cell.
func Fit(page document.Page, cell document.Rect) document.Rect {
	if page.Width <= 0 || page.Height <= 0 {
		return cell
	}
	scale := min(cell.W/page.Width, cell.H/page.Height)
	w, h := page.Width*scale, page.Height*scale
	return document.Rect{
		X: cell.X + (cell.W-w)/2,
		Y: cell.Y + (cell.H-h)/2,
		W: w,
		H: h,
	}
}
