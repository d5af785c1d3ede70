package imposition

// Edge is a line segment on the sheet grid, measured in cells from the
// bottom-left corner of the sheet.
type Edge struct {
	X0, Y0 float64
	X1, Y1 float64
}

// SpineGuide returns the edge shared by the front slots holding the first and
// the last page of the sheet's block. Nothing is returned when either page is
// missing from the front or the two slots do not touch.
func (s Sheet) SpineGuide() (Edge, bool) {
	var first, last *Slot
	for i := range s.Front {
		switch s.Front[i].SrcIndex {
		case s.BlockStart:
			first = &s.Front[i]
		case s.BlockEnd:
			last = &s.Front[i]
		}
	}
	if first == nil || last == nil {
		return Edge{}, false
	}

	dc := last.Col - first.Col
	dr := last.Row - first.Row
	switch {
	case abs(dc) == 1 && dr == 0:
		x := float64(max(first.Col, last.Col))
		return Edge{X0: x, Y0: float64(first.Row), X1: x, Y1: float64(first.Row + 1)}, true
	case dc == 0 && abs(dr) == 1:
		y := float64(max(first.Row, last.Row))
		return Edge{X0: float64(first.Col), Y0: y, X1: float64(first.Col + 1), Y1: y}, true
	}
	return Edge{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
