package fold

import "fmt"

// InvalidGridError is returned when a grid cannot be folded by the given
// number of half-folds, i.e. when cols*rows != 2^folds.
type InvalidGridError struct {
	Grid  Grid
	Folds int
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("fold: a %dx%d grid cannot be folded %d times", e.Grid.Cols, e.Grid.Rows, e.Folds)
}

// UnsupportedAxisSequenceError is returned when a fold does not split the
// remaining rectangle into two equal halves of whole cells.
type UnsupportedAxisSequenceError struct {
	Step   int
	Axis   Axis
	Extent int
}

func (e *UnsupportedAxisSequenceError) Error() string {
	return fmt.Sprintf("fold: step %d (%s) cannot bisect an extent of %d cells", e.Step+1, e.Axis, e.Extent)
}
