package planio

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/foldbook/internal/fold"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
)

// WriteText prints every sheet side as a grid, top row first, the way the
// sheet lies on the table. Each cell shows the source page number and a
// "v" when the page is printed upside down.
func WriteText(w io.Writer, plan *imposition.Plan, selection []int) error {
	table, err := imposition.Table(plan.Layout)
	if err != nil {
		return err
	}
	l := plan.Layout

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d pages on %d sheets (%dx%d cells, folds %s, bound %s)\n",
		l.Name, plan.PageCount, len(plan.Sheets), l.Grid.Cols, l.Grid.Rows, fold.Sequence(l.Folds), table.Binding)

	for i, sheet := range plan.Sheets {
		writeSide(&b, fmt.Sprintf("sheet %d front", i+1), l.Grid, sheet.Front, selection)
		if sheet.Duplex() {
			writeSide(&b, fmt.Sprintf("sheet %d back", i+1), l.Grid, sheet.Back, selection)
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func writeSide(b *strings.Builder, title string, grid fold.Grid, slots []imposition.Slot, selection []int) {
	cells := make(map[fold.Cell]imposition.Slot, len(slots))
	for _, s := range slots {
		cells[fold.Cell{Col: s.Col, Row: s.Row}] = s
	}

	fmt.Fprintf(b, "\n%s\n", title)
	for r := grid.Rows - 1; r >= 0; r-- {
		b.WriteString(" ")
		for c := 0; c < grid.Cols; c++ {
			s, ok := cells[fold.Cell{Col: c, Row: r}]
			if !ok {
				b.WriteString("     .")
				continue
			}
			mark := " "
			if s.RotateDeg == 180 {
				mark = "v"
			}
			fmt.Fprintf(b, " %4d%s", pageNumber(selection, s.SrcIndex), mark)
		}
		b.WriteString("\n")
	}
}
