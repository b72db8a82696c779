package tetris

// Gap is a horizontal run of empty cells in one row.
type Gap struct {
	Row   int `json:"row"`
	Start int `json:"start"`
	Width int `json:"width"`
}

// TopGaps lists every empty run in the first rows of the board, scanning
// rows top-down and columns left to right.
func TopGaps(b *Board, rows int) []Gap {
	var gaps []Gap
	for row := 0; row < rows && row < b.H; row++ {
		start := -1
		for col := range b.W {
			if b.Get(row, col) == CellEmpty {
				if start == -1 {
					start = col
				}
				continue
			}
			if start != -1 {
				gaps = append(gaps, Gap{Row: row, Start: start, Width: col - start})
				start = -1
			}
		}
		if start != -1 {
			gaps = append(gaps, Gap{Row: row, Start: start, Width: b.W - start})
		}
	}
	return gaps
}

// WidestTopGap returns the widest run found by TopGaps; the first one wins ties.
func WidestTopGap(b *Board, rows int) (Gap, bool) {
	gaps := TopGaps(b, rows)
	if len(gaps) == 0 {
		return Gap{}, false
	}
	best := gaps[0]
	for _, g := range gaps[1:] {
		if g.Width > best.Width {
			best = g
		}
	}
	return best, true
}

// ColumnStats describes one column of the stack.
type ColumnStats struct {
	Height int `json:"height"` // rows from the floor to the topmost filled cell
	Holes  int `json:"holes"`  // empty cells below the topmost filled cell
}

// Analysis summarises the stack for side panels and hints.
type Analysis struct {
	Columns   []ColumnStats `json:"columns"`
	MaxHeight int           `json:"max_height"`
	Holes     int           `json:"holes"`
	Hint      string        `json:"hint"` // name of the standard shape suggested for the stack
}

// AnalyzeColumns measures per-column height and holes and suggests a shape:
// an I piece when a column has more than two holes, a T piece when the
// average height passes three quarters of the board, otherwise an O piece.
func AnalyzeColumns(b *Board) Analysis {
	a := Analysis{Columns: make([]ColumnStats, b.W)}
	total := 0
	for col := range b.W {
		var cs ColumnStats
		for row := range b.H {
			if b.Get(row, col) != CellEmpty {
				cs.Height = b.H - row
				break
			}
		}
		for row := b.H - cs.Height; row < b.H; row++ {
			if b.Get(row, col) == CellEmpty {
				cs.Holes++
			}
		}
		a.Columns[col] = cs
		a.Holes += cs.Holes
		total += cs.Height
		a.MaxHeight = max(a.MaxHeight, cs.Height)
	}

	maxHoles := 0
	for _, cs := range a.Columns {
		maxHoles = max(maxHoles, cs.Holes)
	}
	switch {
	case maxHoles > 2:
		a.Hint = "I"
	case b.W > 0 && total*4 > b.H*3*b.W:
		a.Hint = "T"
	default:
		a.Hint = "O"
	}
	return a
}
