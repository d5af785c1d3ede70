// Package planio writes imposition plans in text and data formats.
package planio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"gopkg.in/yaml.v3"
)

// Format is an export format.
type Format string

const (
	Text    Format = "text"
	YAML    Format = "yaml"
	JSON    Format = "json"
	CSV     Format = "csv"
	Parquet Format = "parquet"
)

// Formats lists the supported export formats.
func Formats() []Format {
	return []Format{Text, YAML, JSON, CSV, Parquet}
}

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return Text, nil
	case Text, YAML, JSON, CSV, Parquet:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported output format: %s (supported: text, yaml, json, csv, parquet)", s)
}

// Record is one slot of a plan, flattened for tabular formats.
type Record struct {
	Sheet      int    `json:"sheet" yaml:"sheet" parquet:"sheet"`
	Side       string `json:"side" yaml:"side" parquet:"side"`
	Col        int    `json:"col" yaml:"col" parquet:"col"`
	Row        int    `json:"row" yaml:"row" parquet:"row"`
	SrcIndex   int    `json:"src_index" yaml:"src_index" parquet:"src_index"`
	PageNumber int    `json:"page_number" yaml:"page_number" parquet:"page_number"`
	RotateDeg  int    `json:"rotate_deg" yaml:"rotate_deg" parquet:"rotate_deg"`
}

var csvHeader = []string{"sheet", "side", "col", "row", "src_index", "page_number", "rotate_deg"}

// Records flattens plan into one record per slot, sheets numbered from 1.
// PageNumber is the 1-based page of the source document; selection maps
// effective indexes to source pages and may be nil for the identity.
func Records(plan *imposition.Plan, selection []int) []Record {
	var records []Record
	for i, sheet := range plan.Sheets {
		for _, side := range []struct {
			name  string
			slots []imposition.Slot
		}{{"front", sheet.Front}, {"back", sheet.Back}} {
			for _, s := range side.slots {
				records = append(records, Record{
					Sheet:      i + 1,
					Side:       side.name,
					Col:        s.Col,
					Row:        s.Row,
					SrcIndex:   s.SrcIndex,
					PageNumber: pageNumber(selection, s.SrcIndex),
					RotateDeg:  s.RotateDeg,
				})
			}
		}
	}
	return records
}

func pageNumber(selection []int, src int) int {
	if selection == nil {
		return src + 1
	}
	return selection[src] + 1
}

// Export is the document written by the YAML and JSON formats.
type Export struct {
	Layout    imposition.Layout  `json:"layout" yaml:"layout"`
	Binding   string             `json:"binding" yaml:"binding"`
	PageCount int                `json:"page_count" yaml:"page_count"`
	BlockSize int                `json:"block_size" yaml:"block_size"`
	Selection []int              `json:"selection,omitempty" yaml:"selection,omitempty"`
	Sheets    []imposition.Sheet `json:"sheets" yaml:"sheets"`
}

// NewExport builds the export document of plan. Selection is written as
// 1-based page numbers.
func NewExport(plan *imposition.Plan, selection []int) (*Export, error) {
	table, err := imposition.Table(plan.Layout)
	if err != nil {
		return nil, err
	}
	e := &Export{
		Layout:    plan.Layout,
		Binding:   table.Binding.String(),
		PageCount: plan.PageCount,
		BlockSize: plan.BlockSize,
		Sheets:    plan.Sheets,
	}
	for _, p := range selection {
		e.Selection = append(e.Selection, p+1)
	}
	return e, nil
}

// Write encodes plan to w in the given format.
func Write(w io.Writer, format Format, plan *imposition.Plan, selection []int) error {
	switch format {
	case Text:
		return WriteText(w, plan, selection)
	case YAML, JSON:
		e, err := NewExport(plan, selection)
		if err != nil {
			return err
		}
		if format == JSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(e)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case CSV:
		return writeCSV(w, Records(plan, selection))
	case Parquet:
		return WriteParquet(w, Records(plan, selection))
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Sheet),
			r.Side,
			strconv.Itoa(r.Col),
			strconv.Itoa(r.Row),
			strconv.Itoa(r.SrcIndex),
			strconv.Itoa(r.PageNumber),
			strconv.Itoa(r.RotateDeg),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
