package tetris

// Cell is a board value. Zero is empty; positive values encode the block kind.
type Cell int

// Reserved cell values. Standard colors are 1-7 and advanced shapes 9-12.
const (
	CellEmpty        Cell = 0
	CellRainbow      Cell = 8
	CellNuclear      Cell = 14
	CellFire         Cell = 15 // shared by fire and acid blocks
	CellColorCleaner Cell = 16
	CellNeutrino     Cell = 50
	CellAICustom     Cell = 99
)

// MaxStandardColor is the highest standard piece color.
const MaxStandardColor Cell = 7

// Board is the grid of settled cells, stored row-major: index = row*W + col.
// Row 0 is the top of the well.
type Board struct {
	W     int
	H     int
	Cells []Cell
}

// NewBoard creates an empty board.
func NewBoard(w, h int) *Board {
	return &Board{W: w, H: h, Cells: make([]Cell, w*h)}
}

// BoardFromRows builds a board from a row slice. All rows must share the
// width of the first one.
func BoardFromRows(rows [][]Cell) *Board {
	if len(rows) == 0 {
		return NewBoard(0, 0)
	}
	b := NewBoard(len(rows[0]), len(rows))
	for r, row := range rows {
		copy(b.Cells[r*b.W:(r+1)*b.W], row)
	}
	return b
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.H && col >= 0 && col < b.W
}

// Get returns the cell at (row, col), or CellEmpty when out of bounds.
func (b *Board) Get(row, col int) Cell {
	if !b.InBounds(row, col) {
		return CellEmpty
	}
	return b.Cells[row*b.W+col]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(row, col int, c Cell) {
	if b.InBounds(row, col) {
		b.Cells[row*b.W+col] = c
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{W: b.W, H: b.H, Cells: cells}
}

// Equal reports whether two boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.W != o.W || b.H != o.H {
		return false
	}
	for i, c := range b.Cells {
		if o.Cells[i] != c {
			return false
		}
	}
	return true
}

// Row returns a copy of one row.
func (b *Board) Row(row int) []Cell {
	out := make([]Cell, b.W)
	if row >= 0 && row < b.H {
		copy(out, b.Cells[row*b.W:(row+1)*b.W])
	}
	return out
}

// Rows returns the board as a fresh matrix.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.H)
	for r := range rows {
		rows[r] = b.Row(r)
	}
	return rows
}

// FilledInRow counts the non-empty cells of a row.
func (b *Board) FilledInRow(row int) int {
	n := 0
	for col := range b.W {
		if b.Get(row, col) != CellEmpty {
			n++
		}
	}
	return n
}

// Count returns the number of non-empty cells on the board.
func (b *Board) Count() int {
	n := 0
	for _, c := range b.Cells {
		if c != CellEmpty {
			n++
		}
	}
	return n
}
