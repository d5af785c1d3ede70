// Package fold simulates folding a printed sheet into a booklet.
//
// A sheet is divided into a grid of cells, one cell per booklet page on each
// side of the paper. Folding the sheet in half repeatedly stacks the cells into
// leaves; Derive works out, for every cell on both sides of the sheet, which
// page of the finished booklet it becomes and whether its content has to be
// printed upside down to read correctly.
package fold

import (
	"fmt"
	"sort"
	"strings"
)

// Axis is the direction of a crease.
type Axis int

const (
	// Horizontal folds halve the height of the sheet.
	Horizontal Axis = iota
	// Vertical folds halve the width of the sheet.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "horizontal", "h":
		*a = Horizontal
	case "vertical", "v":
		*a = Vertical
	default:
		return fmt.Errorf("unknown fold axis %q", text)
	}
	return nil
}

// Sequence renders a fold sequence in short form, e.g. "VHV".
func Sequence(steps []Axis) string {
	var b strings.Builder
	for _, s := range steps {
		switch s {
		case Horizontal:
			b.WriteByte('H')
		case Vertical:
			b.WriteByte('V')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// Grid is the number of cells the unfolded sheet is divided into.
type Grid struct {
	Cols int `json:"cols" yaml:"cols"`
	Rows int `json:"rows" yaml:"rows"`
}

// Size returns the number of cells on one side of the sheet.
func (g Grid) Size() int {
	return g.Cols * g.Rows
}

func (g Grid) index(c Cell) int {
	return c.Row*g.Cols + c.Col
}

func (g Grid) contains(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

// Cell is a grid position. Columns count from the left, rows from the bottom.
type Cell struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

// Side selects one face of the sheet.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Binding tells which edge of the finished booklet is the spine.
type Binding int

const (
	// BindLeft is a side-bound booklet, pages turn like a book.
	BindLeft Binding = iota
	// BindTop is a top-bound booklet, pages flip up like a calendar.
	BindTop
)

func (b Binding) String() string {
	if b == BindTop {
		return "top"
	}
	return "left"
}

// Placement is what a cell becomes after folding.
type Placement struct {
	// Position is the 1-based reading position in the finished booklet.
	Position int
	// Rotation is 0 or 180, the rotation the content needs on the sheet.
	Rotation int
}

// Face is one printed cell on one side of the sheet.
type Face struct {
	Side Side
	Cell Cell
}

// Leaf is one physical leaf of the folded booklet.
type Leaf struct {
	Upper Face
	Lower Face
}

// Table is the result of simulating a fold sequence.
type Table struct {
	Grid    Grid
	Steps   []Axis
	Binding Binding

	// Leaves is the folded stack, from the cover inwards.
	Leaves []Leaf

	front []Placement
	back  []Placement
}

// Pages returns the number of booklet pages one sheet holds.
func (t *Table) Pages() int {
	return 2 * t.Grid.Size()
}

// At returns the placement of a cell on the given side.
func (t *Table) At(side Side, c Cell) Placement {
	if side == Back {
		return t.back[t.Grid.index(c)]
	}
	return t.front[t.Grid.index(c)]
}

// Cells lists the grid positions in row-major order, bottom row first.
func (t *Table) Cells() []Cell {
	cells := make([]Cell, 0, t.Grid.Size())
	for r := 0; r < t.Grid.Rows; r++ {
		for c := 0; c < t.Grid.Cols; c++ {
			cells = append(cells, Cell{Col: c, Row: r})
		}
	}
	return cells
}

// FrontOrder returns the front cells sorted by reading position. When the
// sheet is printed on the front only, the k-th cell of this list carries
// logical page k+1.
func (t *Table) FrontOrder() []Cell {
	cells := t.Cells()
	sort.Slice(cells, func(i, j int) bool {
		return t.At(Front, cells[i]).Position < t.At(Front, cells[j]).Position
	})
	return cells
}

// layer is the state of one cell while the sheet is being folded.
type layer struct {
	x, y int
	z    int
	// frontUp is true while the side printed first faces upwards.
	frontUp bool
	// up is +1 while the content's top points towards the top of the sheet.
	up int
}

// Derive folds a sheet divided into grid along steps, first step first.
//
// Every fold carries the far half of the current rectangle (the right half
// for a vertical fold, the top half for a horizontal one) over onto the near
// half. The crease of the last fold becomes the spine.
func Derive(grid Grid, steps []Axis) (*Table, error) {
	if len(steps) == 0 || grid.Cols <= 0 || grid.Rows <= 0 || len(steps) > 30 || grid.Size() != 1<<len(steps) {
		return nil, &InvalidGridError{Grid: grid, Folds: len(steps)}
	}

	layers := make([]layer, grid.Size())
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			layers[grid.index(Cell{c, r})] = layer{x: c, y: r, frontUp: true, up: 1}
		}
	}

	w, h, depth := grid.Cols, grid.Rows, 1
	for i, axis := range steps {
		var extent int
		switch axis {
		case Vertical:
			extent = w
		case Horizontal:
			extent = h
		default:
			return nil, &UnsupportedAxisSequenceError{Step: i, Axis: axis, Extent: 0}
		}
		if extent%2 != 0 {
			return nil, &UnsupportedAxisSequenceError{Step: i, Axis: axis, Extent: extent}
		}
		half := extent / 2
		for j := range layers {
			l := &layers[j]
			pos := &l.x
			if axis == Horizontal {
				pos = &l.y
			}
			if *pos < half {
				l.z += depth
				continue
			}
			*pos = extent - 1 - *pos
			l.z = depth - 1 - l.z
			l.frontUp = !l.frontUp
			if axis == Horizontal {
				l.up = -l.up
			}
		}
		if axis == Vertical {
			w = half
		} else {
			h = half
		}
		depth *= 2
	}

	t := &Table{
		Grid:   grid,
		Steps:  append([]Axis(nil), steps...),
		Leaves: make([]Leaf, depth),
		front:  make([]Placement, grid.Size()),
		back:   make([]Placement, grid.Size()),
	}

	// A vertical last fold leaves the crease on the right; the booklet is
	// turned half a revolution to bring it to the left. A horizontal last
	// fold already leaves it on top.
	last := steps[len(steps)-1]
	turn := 1
	if last == Vertical {
		turn = -1
	} else {
		t.Binding = BindTop
	}

	faces := [2][]Placement{t.front, t.back}
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			l := layers[grid.index(Cell{c, r})]
			upper := l.up * turn
			lower := upper
			if last == Horizontal {
				// flipping a leaf over the top edge turns its underside around
				lower = -lower
			}

			frontFace := Face{Side: Front, Cell: Cell{c, r}}
			backFace := Face{Side: Back, Cell: Cell{grid.Cols - 1 - c, r}}
			up, down := frontFace, backFace
			if !l.frontUp {
				up, down = backFace, frontFace
			}
			t.Leaves[l.z] = Leaf{Upper: up, Lower: down}
			faces[up.Side][grid.index(up.Cell)] = Placement{Position: 2*l.z + 1, Rotation: rotation(upper)}
			faces[down.Side][grid.index(down.Cell)] = Placement{Position: 2*l.z + 2, Rotation: rotation(lower)}
		}
	}

	// The side carrying the cover is printed first.
	if t.Leaves[0].Upper.Side == Back {
		t.front, t.back = t.back, t.front
		for i := range t.Leaves {
			t.Leaves[i].Upper.Side = 1 - t.Leaves[i].Upper.Side
			t.Leaves[i].Lower.Side = 1 - t.Leaves[i].Lower.Side
		}
	}
	return t, nil
}

func rotation(up int) int {
	if up < 0 {
		return 180
	}
	return 0
}
