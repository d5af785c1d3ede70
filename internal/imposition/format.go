package imposition

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/foldbook/internal/fold"
)

// A4 paper in PDF points.
const (
	A4Short = 595.28
	A4Long  = 841.89
)

// Format selects the booklet size and page orientation.
type Format int

const (
	A7Portrait Format = iota
	A7Landscape
	A6
)

var formatNames = map[Format]string{
	A7Portrait:  "a7-portrait",
	A7Landscape: "a7-landscape",
	A6:          "a6",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{A7Portrait, A7Landscape, A6}
}

// Resolve maps the user-facing options onto a Format. Orientation only
// matters for a7 and defaults to portrait.
func Resolve(size, orientation string) (Format, error) {
	size = strings.ToLower(strings.TrimSpace(size))
	orientation = strings.ToLower(strings.TrimSpace(orientation))

	switch size {
	case "a6":
		return A6, nil
	case "a7", "":
		switch orientation {
		case "portrait", "":
			return A7Portrait, nil
		case "landscape":
			return A7Landscape, nil
		default:
			return 0, fmt.Errorf("invalid orientation %q (must be portrait or landscape)", orientation)
		}
	case "a7-portrait":
		return A7Portrait, nil
	case "a7-landscape":
		return A7Landscape, nil
	default:
		return 0, fmt.Errorf("invalid format %q (must be a7 or a6)", size)
	}
}

// Layout is the physical description of a format: how the sheet is divided,
// how it is folded and how large it is.
type Layout struct {
	Name        string      `json:"name" yaml:"name"`
	Grid        fold.Grid   `json:"grid" yaml:"grid"`
	Folds       []fold.Axis `json:"folds" yaml:"folds"`
	SheetWidth  float64     `json:"sheet_width" yaml:"sheet_width"`
	SheetHeight float64     `json:"sheet_height" yaml:"sheet_height"`
}

// BlockSize is the number of pages one duplex sheet holds.
func (l Layout) BlockSize() int {
	return 2 * l.Grid.Size()
}

// CellSize returns the width and height of one grid cell in points.
func (l Layout) CellSize() (float64, float64) {
	return l.SheetWidth / float64(l.Grid.Cols), l.SheetHeight / float64(l.Grid.Rows)
}

func (l Layout) key() string {
	return fmt.Sprintf("%dx%d:%s", l.Grid.Cols, l.Grid.Rows, fold.Sequence(l.Folds))
}

// Layout returns the layout record of the format.
func (f Format) Layout() Layout {
	switch f {
	case A7Landscape:
		// Landscape pages on a portrait sheet, bound at the top.
		return Layout{
			Name:        f.String(),
			Grid:        fold.Grid{Cols: 2, Rows: 4},
			Folds:       []fold.Axis{fold.Horizontal, fold.Vertical, fold.Horizontal},
			SheetWidth:  A4Short,
			SheetHeight: A4Long,
		}
	case A6:
		return Layout{
			Name:        f.String(),
			Grid:        fold.Grid{Cols: 2, Rows: 2},
			Folds:       []fold.Axis{fold.Horizontal, fold.Vertical},
			SheetWidth:  A4Short,
			SheetHeight: A4Long,
		}
	default:
		// Portrait pages on a landscape sheet: fold A4 to A5, A6, then A7.
		return Layout{
			Name:        A7Portrait.String(),
			Grid:        fold.Grid{Cols: 4, Rows: 2},
			Folds:       []fold.Axis{fold.Vertical, fold.Horizontal, fold.Vertical},
			SheetWidth:  A4Long,
			SheetHeight: A4Short,
		}
	}
}
