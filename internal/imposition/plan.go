// Package imposition arranges the pages of a document on folding sheets.
package imposition

import (
	"fmt"
	"sync"

	"github.com/lehigh-university-libraries/foldbook/internal/fold"
)

// Slot places one source page on a sheet.
type Slot struct {
	// SrcIndex is the 0-based index into the effective page sequence.
	SrcIndex  int `json:"src_index" yaml:"src_index"`
	Col       int `json:"col" yaml:"col"`
	Row       int `json:"row" yaml:"row"`
	RotateDeg int `json:"rotate_deg" yaml:"rotate_deg"`
}

// Sheet is one physical sheet of paper. Back is empty for single-sided
// sheets.
type Sheet struct {
	Front []Slot `json:"front" yaml:"front"`
	Back  []Slot `json:"back" yaml:"back"`

	// BlockStart and BlockEnd are the first and last effective page index
	// the sheet was planned for.
	BlockStart int `json:"block_start" yaml:"block_start"`
	BlockEnd   int `json:"block_end" yaml:"block_end"`
}

// Duplex reports whether the sheet is printed on both sides.
func (s Sheet) Duplex() bool {
	return len(s.Back) > 0
}

// Plan is the ordered list of sheets for a document.
type Plan struct {
	Layout    Layout  `json:"layout" yaml:"layout"`
	PageCount int     `json:"page_count" yaml:"page_count"`
	BlockSize int     `json:"block_size" yaml:"block_size"`
	Sheets    []Sheet `json:"sheets" yaml:"sheets"`
}

// OutputPages returns the number of printed sides.
func (p *Plan) OutputPages() int {
	n := 0
	for _, s := range p.Sheets {
		n++
		if s.Duplex() {
			n++
		}
	}
	return n
}

type derivation struct {
	once  sync.Once
	table *fold.Table
	order []fold.Cell
	err   error
}

// tables memoizes derived fold tables by layout.
var tables sync.Map

func lookup(l Layout) (*derivation, error) {
	v, _ := tables.LoadOrStore(l.key(), &derivation{})
	d := v.(*derivation)
	d.once.Do(func() {
		d.table, d.err = fold.Derive(l.Grid, l.Folds)
		if d.err == nil {
			d.order = d.table.FrontOrder()
		}
	})
	if d.err != nil {
		return nil, fmt.Errorf("derive %s layout: %w", l.Name, d.err)
	}
	return d, nil
}

// Table returns the fold table of a layout.
func Table(l Layout) (*fold.Table, error) {
	d, err := lookup(l)
	if err != nil {
		return nil, err
	}
	return d.table, nil
}

// Build plans pageCount effective pages in the given format.
func Build(format Format, pageCount int) (*Plan, error) {
	return BuildLayout(format.Layout(), pageCount)
}

// BuildLayout plans pageCount effective pages on sheets of the given layout.
//
// Pages are taken in blocks of one full sheet. A block holding no more than
// half a sheet's capacity is printed on the front only, using the front cells
// in reading order; otherwise every cell with a backing page gets a slot.
// Cells without a page are left out.
func BuildLayout(layout Layout, pageCount int) (*Plan, error) {
	if pageCount < 0 {
		return nil, fmt.Errorf("invalid page count %d", pageCount)
	}
	d, err := lookup(layout)
	if err != nil {
		return nil, err
	}

	blockSize := layout.BlockSize()
	plan := &Plan{
		Layout:    layout,
		PageCount: pageCount,
		BlockSize: blockSize,
		Sheets:    make([]Sheet, 0, (pageCount+blockSize-1)/blockSize),
	}

	for start := 0; start < pageCount; start += blockSize {
		remaining := pageCount - start
		sheet := Sheet{
			BlockStart: start,
			BlockEnd:   min(start+blockSize, pageCount) - 1,
			Front:      []Slot{},
			Back:       []Slot{},
		}

		if remaining <= blockSize/2 {
			for rank, cell := range d.order[:remaining] {
				sheet.Front = append(sheet.Front, Slot{
					SrcIndex:  start + rank,
					Col:       cell.Col,
					Row:       cell.Row,
					RotateDeg: d.table.At(fold.Front, cell).Rotation,
				})
			}
		} else {
			sheet.Front = sideSlots(d.table, fold.Front, start, pageCount)
			sheet.Back = sideSlots(d.table, fold.Back, start, pageCount)
		}

		plan.Sheets = append(plan.Sheets, sheet)
	}

	return plan, nil
}

func sideSlots(table *fold.Table, side fold.Side, start, pageCount int) []Slot {
	slots := []Slot{}
	for _, cell := range table.Cells() {
		p := table.At(side, cell)
		src := start + p.Position - 1
		if src >= pageCount {
			continue
		}
		slots = append(slots, Slot{
			SrcIndex:  src,
			Col:       cell.Col,
			Row:       cell.Row,
			RotateDeg: p.Rotation,
		})
	}
	return slots
}
