package fold

import (
	"errors"
	"testing"
)

// ply is one cell of paper inside a folded pile.
type ply struct {
	top, bottom Face
	up          int
}

// refold folds a sheet physically, pile by pile, and returns the finished
// booklet from the cover inwards. frontUp selects which printed side faces
// upwards while folding.
func refold(t *Table, frontUp bool) []ply {
	g := t.Grid
	stacks := make(map[Cell][]ply)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			p := ply{
				top:    Face{Side: Front, Cell: Cell{x, y}},
				bottom: Face{Side: Back, Cell: Cell{g.Cols - 1 - x, y}},
				up:     1,
			}
			if !frontUp {
				p.top = Face{Side: Back, Cell: Cell{x, y}}
				p.bottom = Face{Side: Front, Cell: Cell{g.Cols - 1 - x, y}}
			}
			stacks[Cell{x, y}] = []ply{p}
		}
	}

	w, h := g.Cols, g.Rows
	for _, axis := range t.Steps {
		next := make(map[Cell][]ply)
		switch axis {
		case Vertical:
			half := w / 2
			for y := 0; y < h; y++ {
				for x := 0; x < half; x++ {
					next[Cell{x, y}] = stackOver(stacks[Cell{w - 1 - x, y}], stacks[Cell{x, y}], 1)
				}
			}
			w = half
		case Horizontal:
			half := h / 2
			for y := 0; y < half; y++ {
				for x := 0; x < w; x++ {
					next[Cell{x, y}] = stackOver(stacks[Cell{x, h - 1 - y}], stacks[Cell{x, y}], -1)
				}
			}
			h = half
		}
		stacks = next
	}

	pile := stacks[Cell{0, 0}]
	if t.Steps[len(t.Steps)-1] == Vertical {
		for i := range pile {
			pile[i].up = -pile[i].up
		}
	}
	return pile
}

// stackOver turns moving over and lays it on top of stay.
func stackOver(moving, stay []ply, flip int) []ply {
	pile := make([]ply, 0, len(moving)+len(stay))
	for i := len(moving) - 1; i >= 0; i-- {
		p := moving[i]
		pile = append(pile, ply{top: p.bottom, bottom: p.top, up: p.up * flip})
	}
	return append(pile, stay...)
}

func rotationOf(up int) int {
	if up < 0 {
		return 180
	}
	return 0
}

func checkRoundTrip(t *testing.T, table *Table) {
	t.Helper()

	pile := refold(table, true)
	if pile[0].top.Side != Front {
		pile = refold(table, false)
	}
	if pile[0].top.Side != Front {
		t.Fatalf("cover is not on the front side")
	}
	if len(pile) != len(table.Leaves) {
		t.Fatalf("expected %d leaves, got %d", len(table.Leaves), len(pile))
	}

	lowerFlip := 1
	if table.Binding == BindTop {
		lowerFlip = -1
	}

	var read []int
	for i, p := range pile {
		upper := table.At(p.top.Side, p.top.Cell)
		lower := table.At(p.bottom.Side, p.bottom.Cell)
		read = append(read, upper.Position, lower.Position)

		if upper.Rotation != rotationOf(p.up) {
			t.Errorf("leaf %d upper face %v: rotation %d, want %d", i, p.top, upper.Rotation, rotationOf(p.up))
		}
		if lower.Rotation != rotationOf(p.up*lowerFlip) {
			t.Errorf("leaf %d lower face %v: rotation %d, want %d", i, p.bottom, lower.Rotation, rotationOf(p.up*lowerFlip))
		}
		if table.Leaves[i] != (Leaf{Upper: p.top, Lower: p.bottom}) {
			t.Errorf("leaf %d: got %+v, folded %+v", i, table.Leaves[i], p)
		}
	}

	for i, pos := range read {
		if pos != i+1 {
			t.Fatalf("reading order %v, want 1..%d", read, table.Pages())
		}
	}
}

func TestDeriveRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		grid  Grid
		steps []Axis
	}{
		{"a6", Grid{2, 2}, []Axis{Horizontal, Vertical}},
		{"a7 portrait pages", Grid{4, 2}, []Axis{Vertical, Horizontal, Vertical}},
		{"a7 landscape pages", Grid{2, 4}, []Axis{Horizontal, Vertical, Horizontal}},
		{"single fold", Grid{2, 1}, []Axis{Vertical}},
		{"single horizontal fold", Grid{1, 2}, []Axis{Horizontal}},
		{"parallel folds", Grid{2, 4}, []Axis{Horizontal, Horizontal, Vertical}},
		{"a8 sixteen cells", Grid{4, 4}, []Axis{Horizontal, Vertical, Horizontal, Vertical}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Derive(tt.grid, tt.steps)
			if err != nil {
				t.Fatalf("Derive: %v", err)
			}
			checkRoundTrip(t, table)
		})
	}
}

func TestDeriveA6Table(t *testing.T) {
	table, err := Derive(Grid{2, 2}, []Axis{Horizontal, Vertical})
	if err != nil {
		t.Fatal(err)
	}
	if table.Binding != BindLeft {
		t.Errorf("Expected left binding, got %s", table.Binding)
	}

	front := map[Cell]Placement{
		{0, 1}: {4, 0}, {1, 1}: {5, 0},
		{0, 0}: {1, 180}, {1, 0}: {8, 180},
	}
	back := map[Cell]Placement{
		{0, 1}: {6, 0}, {1, 1}: {3, 0},
		{0, 0}: {7, 180}, {1, 0}: {2, 180},
	}
	for cell, want := range front {
		if got := table.At(Front, cell); got != want {
			t.Errorf("front %v: got %+v, want %+v", cell, got, want)
		}
	}
	for cell, want := range back {
		if got := table.At(Back, cell); got != want {
			t.Errorf("back %v: got %+v, want %+v", cell, got, want)
		}
	}
}

func TestDeriveA7PortraitTable(t *testing.T) {
	table, err := Derive(Grid{4, 2}, []Axis{Vertical, Horizontal, Vertical})
	if err != nil {
		t.Fatal(err)
	}

	wantFront := [2][4]Placement{
		{{13, 180}, {4, 180}, {1, 180}, {16, 180}},
		{{12, 0}, {5, 0}, {8, 0}, {9, 0}},
	}
	wantBack := [2][4]Placement{
		{{15, 180}, {2, 180}, {3, 180}, {14, 180}},
		{{10, 0}, {7, 0}, {6, 0}, {11, 0}},
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			if got := table.At(Front, Cell{c, r}); got != wantFront[r][c] {
				t.Errorf("front (%d,%d): got %+v, want %+v", c, r, got, wantFront[r][c])
			}
			if got := table.At(Back, Cell{c, r}); got != wantBack[r][c] {
				t.Errorf("back (%d,%d): got %+v, want %+v", c, r, got, wantBack[r][c])
			}
		}
	}
}

func TestDeriveTopBinding(t *testing.T) {
	table, err := Derive(Grid{2, 4}, []Axis{Horizontal, Vertical, Horizontal})
	if err != nil {
		t.Fatal(err)
	}
	if table.Binding != BindTop {
		t.Fatalf("Expected top binding, got %s", table.Binding)
	}
	// cover and back cover meet across the spine
	if got := table.At(Front, Cell{1, 1}); got != (Placement{1, 180}) {
		t.Errorf("cover: got %+v", got)
	}
	if got := table.At(Front, Cell{1, 0}); got != (Placement{16, 180}) {
		t.Errorf("back cover: got %+v", got)
	}
}

func TestFrontOrder(t *testing.T) {
	table, err := Derive(Grid{4, 2}, []Axis{Vertical, Horizontal, Vertical})
	if err != nil {
		t.Fatal(err)
	}
	order := table.FrontOrder()
	want := []int{1, 4, 5, 8, 9, 12, 13, 16}
	if len(order) != len(want) {
		t.Fatalf("Expected %d cells, got %d", len(want), len(order))
	}
	for i, c := range order {
		if got := table.At(Front, c).Position; got != want[i] {
			t.Errorf("rank %d: position %d, want %d", i+1, got, want[i])
		}
	}
}

func TestDeriveIsPure(t *testing.T) {
	a, err := Derive(Grid{4, 2}, []Axis{Vertical, Horizontal, Vertical})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Derive(Grid{4, 2}, []Axis{Vertical, Horizontal, Vertical})
	if err != nil {
		t.Fatal(err)
	}
	for _, side := range []Side{Front, Back} {
		for _, c := range a.Cells() {
			if a.At(side, c) != b.At(side, c) {
				t.Errorf("%s %v differs between runs", side, c)
			}
		}
	}
}

func TestDeriveErrors(t *testing.T) {
	tests := []struct {
		name     string
		grid     Grid
		steps    []Axis
		wantGrid bool
	}{
		{"too few cells", Grid{4, 2}, []Axis{Vertical, Horizontal}, true},
		{"too many cells", Grid{2, 2}, []Axis{Vertical, Horizontal, Vertical}, true},
		{"no folds", Grid{1, 1}, nil, true},
		{"odd grid", Grid{3, 2}, []Axis{Vertical, Horizontal}, true},
		{"empty grid", Grid{0, 4}, []Axis{Horizontal, Horizontal}, true},
		{"fold a single column", Grid{2, 2}, []Axis{Vertical, Vertical}, false},
		{"fold a single row", Grid{4, 1}, []Axis{Horizontal, Vertical}, false},
		{"unknown axis", Grid{2, 1}, []Axis{Axis(7)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.grid, tt.steps)
			if err == nil {
				t.Fatal("Expected an error")
			}
			var gridErr *InvalidGridError
			var axisErr *UnsupportedAxisSequenceError
			if tt.wantGrid && !errors.As(err, &gridErr) {
				t.Errorf("Expected InvalidGridError, got %T: %v", err, err)
			}
			if !tt.wantGrid && !errors.As(err, &axisErr) {
				t.Errorf("Expected UnsupportedAxisSequenceError, got %T: %v", err, err)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	if got := Sequence([]Axis{Vertical, Horizontal, Vertical}); got != "VHV" {
		t.Errorf("Expected VHV, got %s", got)
	}
}

func TestAxisText(t *testing.T) {
	for _, a := range []Axis{Horizontal, Vertical} {
		text, err := a.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Axis
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != a {
			t.Errorf("Expected %s, got %s", a, back)
		}
	}

	var a Axis
	if err := a.UnmarshalText([]byte("V")); err != nil || a != Vertical {
		t.Errorf("Expected short form V to parse as vertical, got %s (%v)", a, err)
	}
	if err := a.UnmarshalText([]byte("diagonal")); err == nil {
		t.Error("Expected an error for an unknown axis")
	}
}
