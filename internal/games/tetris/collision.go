package tetris

// IsValidMove reports whether every filled cell of p lies on the board over
// an empty cell.
func IsValidMove(b *Board, p Piece) bool {
	valid := true
	p.eachCell(func(row, col int, _ Cell) bool {
		if !b.InBounds(row, col) || b.Get(row, col) != CellEmpty {
			valid = false
		}
		return valid
	})
	return valid
}

// PlacePiece returns a copy of b with the shape values of p written in.
// Cells that fall outside the board are skipped.
func PlacePiece(b *Board, p Piece) *Board {
	out := b.Clone()
	p.eachCell(func(row, col int, c Cell) bool {
		out.Set(row, col, c)
		return true
	})
	return out
}

// ApplyGravity returns a copy of b where every column's blocks have fallen
// to the floor, keeping their relative order.
func ApplyGravity(b *Board) *Board {
	out := NewBoard(b.W, b.H)
	for col := range b.W {
		target := b.H - 1
		for row := b.H - 1; row >= 0; row-- {
			if c := b.Get(row, col); c != CellEmpty {
				out.Set(target, col, c)
				target--
			}
		}
	}
	return out
}
