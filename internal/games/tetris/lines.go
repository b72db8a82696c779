package tetris

// SameColorBonus is the flat bonus recorded per same-color line.
const SameColorBonus = 500

// LineClear is the result of ClearLines.
type LineClear struct {
	Board          *Board
	Lines          int
	Indices        []int // pre-clear row index of each cleared line, bottom-up
	SameColorLines int
	SameColorBonus int // informational; scoring uses the same-color multiplier
}

// ClearLines removes every full row, scanning bottom-up. Rows above a
// cleared row shift down and an empty row enters at the top, so the same
// index is checked again after each removal.
func ClearLines(b *Board) LineClear {
	rows := b.Rows()
	res := LineClear{}
	removed := 0

	for row := len(rows) - 1; row >= 0; row-- {
		if !rowFull(rows[row]) {
			continue
		}
		if rowSameColor(rows[row]) {
			res.SameColorLines++
		}
		res.Indices = append(res.Indices, row-removed)
		removed++

		copy(rows[1:row+1], rows[:row])
		rows[0] = make([]Cell, b.W)
		row++
	}

	res.Board = BoardFromRows(rows)
	if b.H == 0 {
		res.Board = NewBoard(b.W, 0)
	}
	res.Lines = len(res.Indices)
	res.SameColorBonus = res.SameColorLines * SameColorBonus
	return res
}

func rowFull(row []Cell) bool {
	for _, c := range row {
		if c == CellEmpty {
			return false
		}
	}
	return len(row) > 0
}

func rowSameColor(row []Cell) bool {
	for _, c := range row {
		if c != row[0] {
			return false
		}
	}
	return true
}
