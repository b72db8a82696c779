package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tetris-arcade/internal/core"
)

// Effect radii and depths for the special blocks.
const (
	FireRadius           = 1
	ContinuousBurnRadius = 2
	AcidDepth            = 4
	maxRareDuplicates    = 3
)

// Land resolves a landed piece onto the board according to its kind and
// returns the new board. The input board is never modified.
func Land(b *Board, p Piece) *Board {
	switch p.Effect() {
	case KindNuclear:
		return PlaceNuclear(b, p)
	case KindAcid:
		return PlaceAcid(b, p)
	case KindColorCleaner:
		return PlaceColorCleaner(b, p)
	case KindNeutrino:
		return PlaceNeutrino(b, p)
	case KindFire:
		return PlaceFire(b, p)
	default:
		return PlacePiece(b, p)
	}
}

// NuclearContact reports whether the piece touches the floor or sits on an
// occupied cell.
func NuclearContact(b *Board, p Piece) bool {
	contact := false
	p.eachCell(func(row, col int, _ Cell) bool {
		if row >= b.H-1 || b.Get(row+1, col) != CellEmpty {
			contact = true
		}
		return !contact
	})
	return contact
}

// PlaceNuclear empties the whole board on contact; otherwise the block is
// placed like any other piece.
func PlaceNuclear(b *Board, p Piece) *Board {
	if NuclearContact(b, p) {
		return NewBoard(b.W, b.H)
	}
	return PlacePiece(b, p)
}

// PlaceAcid places the block, melts up to AcidDepth cells directly below its
// lowest row in the anchor column, then compacts every column.
func PlaceAcid(b *Board, p Piece) *Board {
	out := PlacePiece(b, p)
	bottom := p.Row
	for r := p.Shape.Height() - 1; r >= 0; r-- {
		if rowHasCell(p.Shape[r]) {
			bottom = p.Row + r
			break
		}
	}
	for i := 1; i <= AcidDepth && bottom+i < out.H; i++ {
		out.Set(bottom+i, p.Col, CellEmpty)
	}
	return ApplyGravity(out)
}

// PlaceColorCleaner removes every cell of the target color. The cleaner
// itself is never placed.
func PlaceColorCleaner(b *Board, p Piece) *Board {
	out := b.Clone()
	for i, c := range out.Cells {
		if c == p.Target {
			out.Cells[i] = CellEmpty
		}
	}
	return out
}

// NeutrinoLanding returns the lowest empty cell in the piece's column, or
// row 0 when the column is full.
func NeutrinoLanding(b *Board, p Piece) (row, col int) {
	for r := b.H - 1; r >= 0; r-- {
		if b.Get(r, p.Col) == CellEmpty {
			return r, p.Col
		}
	}
	return 0, p.Col
}

// PlaceNeutrino writes the piece at its phased landing position.
func PlaceNeutrino(b *Board, p Piece) *Board {
	row, col := NeutrinoLanding(b, p)
	p.Row, p.Col = row, col
	return PlacePiece(b, p)
}

// PlaceFire places the block, burns matching cells within FireRadius of the
// anchor, then compacts.
func PlaceFire(b *Board, p Piece) *Board {
	out := PlacePiece(b, p)
	burnWithin(out, p.Row, p.Col, p.Target, FireRadius, -1)
	return ApplyGravity(out)
}

// BurnNearest removes the first cell of color within radius of (row, col),
// scanning row-major, and compacts. It reports false and returns b itself
// when nothing matched.
func BurnNearest(b *Board, row, col int, color Cell, radius int) (*Board, bool) {
	out := b.Clone()
	if burnWithin(out, row, col, color, radius, 1) == 0 {
		return b, false
	}
	return ApplyGravity(out), true
}

// burnWithin clears up to limit cells (all when limit < 0) of color within
// Manhattan distance radius of (row, col), in row-major order.
func burnWithin(b *Board, row, col int, color Cell, radius, limit int) int {
	if color == CellEmpty {
		return 0
	}
	burned := 0
	for r := max(0, row-radius); r <= min(b.H-1, row+radius); r++ {
		for c := max(0, col-radius); c <= min(b.W-1, col+radius); c++ {
			if core.Manhattan(c, r, col, row) > radius || b.Get(r, c) != color {
				continue
			}
			b.Set(r, c, CellEmpty)
			burned++
			if limit > 0 && burned >= limit {
				return burned
			}
		}
	}
	return burned
}

// ApplyRarityEffect runs the post-placement effect of the piece's tier.
// Pieces whose kind has its own placement effect are returned unchanged.
func ApplyRarityEffect(b *Board, p Piece, rng *rand.Rand) *Board {
	if p.Effect().HasOwnEffect() {
		return b
	}
	switch p.Rarity {
	case RarityUncommon:
		return erodeNearlyFullRows(b, rng)
	case RarityRare:
		return duplicateIntoSupports(b, p.Type)
	case RarityLegendary:
		return removeIsolated(b)
	}
	return b
}

// erodeNearlyFullRows removes two random cells from each row holding 7-9 blocks.
func erodeNearlyFullRows(b *Board, rng *rand.Rand) *Board {
	out := b.Clone()
	for row := range out.H {
		n := out.FilledInRow(row)
		if n < 7 || n > 9 {
			continue
		}
		var filled []int
		for col := range out.W {
			if out.Get(row, col) != CellEmpty {
				filled = append(filled, col)
			}
		}
		for range 2 {
			i := rng.Intn(len(filled))
			out.Set(row, filled[i], CellEmpty)
			filled = append(filled[:i], filled[i+1:]...)
		}
	}
	return out
}

// DuplicatePositions finds up to three empty cells, scanning rows bottom-up
// and columns left to right, that rest on a block or the floor and touch a
// block on the left or right.
func DuplicatePositions(b *Board) [][2]int {
	var out [][2]int
	for row := b.H - 1; row >= 0 && len(out) < maxRareDuplicates; row-- {
		for col := 0; col < b.W && len(out) < maxRareDuplicates; col++ {
			if b.Get(row, col) != CellEmpty {
				continue
			}
			supported := row == b.H-1 || b.Get(row+1, col) != CellEmpty
			beside := b.Get(row, col-1) != CellEmpty || b.Get(row, col+1) != CellEmpty
			if supported && beside {
				out = append(out, [2]int{row, col})
			}
		}
	}
	return out
}

// duplicateIntoSupports fills the DuplicatePositions with the piece type.
func duplicateIntoSupports(b *Board, t Cell) *Board {
	out := b.Clone()
	for _, pos := range DuplicatePositions(b) {
		out.Set(pos[0], pos[1], t)
	}
	return out
}

// removeIsolated clears interior cells with at least three empty orthogonal
// neighbours. Neighbours are read from the board as it is being updated.
func removeIsolated(b *Board) *Board {
	out := b.Clone()
	for row := 1; row < out.H-1; row++ {
		for col := 1; col < out.W-1; col++ {
			if out.Get(row, col) == CellEmpty {
				continue
			}
			empty := 0
			for _, n := range []Cell{out.Get(row-1, col), out.Get(row+1, col), out.Get(row, col-1), out.Get(row, col+1)} {
				if n == CellEmpty {
					empty++
				}
			}
			if empty >= 3 {
				out.Set(row, col, CellEmpty)
			}
		}
	}
	return out
}

func rowHasCell(row []Cell) bool {
	for _, c := range row {
		if c != CellEmpty {
			return true
		}
	}
	return false
}
