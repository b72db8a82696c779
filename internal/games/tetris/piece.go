package tetris

// Shape is a small matrix of cell values; zero marks a hole in the shape.
type Shape [][]Cell

// Height returns the number of rows in the shape.
func (s Shape) Height() int { return len(s) }

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and values.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees clockwise: row i of the result
// is column i of the input read bottom to top.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range w {
		out[i] = make([]Cell, h)
		for j := range h {
			out[i][j] = s[h-1-j][i]
		}
	}
	return out
}

// Kind is the closed set of piece behaviours resolved at spawn time.
type Kind int

const (
	KindStandard Kind = iota
	KindAdvanced
	KindRainbow
	KindNeutrino
	KindFire
	KindAcid
	KindNuclear
	KindColorCleaner
	KindAICustom
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindAdvanced:
		return "advanced"
	case KindRainbow:
		return "rainbow"
	case KindNeutrino:
		return "neutrino"
	case KindFire:
		return "fire"
	case KindAcid:
		return "acid"
	case KindNuclear:
		return "nuclear"
	case KindColorCleaner:
		return "color-cleaner"
	case KindAICustom:
		return "ai-custom"
	default:
		return "unknown"
	}
}

// HasOwnEffect reports whether the kind replaces the rarity post-effects with
// its own placement effect.
func (k Kind) HasOwnEffect() bool {
	switch k {
	case KindFire, KindAcid, KindNuclear, KindColorCleaner, KindNeutrino:
		return true
	}
	return false
}

// Effect returns the kind whose landing effect applies to the piece. Fire
// burns only while the piece still carries the fire cell, so a fire piece
// retyped by a rainbow block lands as a plain piece.
func (p Piece) Effect() Kind {
	if p.Kind == KindFire && p.Type != CellFire {
		return KindStandard
	}
	return p.Kind
}

// Rarity is the scoring tier attached to some pieces.
type Rarity int

const (
	RarityNone Rarity = iota
	RarityUncommon
	RarityRare
	RarityLegendary
)

// String returns the tier name, or "" for RarityNone.
func (r Rarity) String() string {
	switch r {
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityLegendary:
		return "legendary"
	default:
		return ""
	}
}

// Multiplier returns the score multiplier for the tier.
func (r Rarity) Multiplier() float64 {
	switch r {
	case RarityUncommon:
		return 1.5
	case RarityRare:
		return 2.0
	case RarityLegendary:
		return 3.0
	default:
		return 1.0
	}
}

// Piece is a falling shape anchored at (Row, Col) on the board.
type Piece struct {
	Shape  Shape
	Row    int
	Col    int
	Type   Cell
	Kind   Kind
	Rarity Rarity
	// Target is the color burned by a fire block or removed by a color cleaner.
	Target Cell
}

// Clone returns a copy that shares no memory with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Moved returns the piece shifted by (dCol, dRow).
func (p Piece) Moved(dCol, dRow int) Piece {
	p.Col += dCol
	p.Row += dRow
	return p
}

// WithShape returns the piece with its shape replaced.
func (p Piece) WithShape(s Shape) Piece {
	p.Shape = s
	return p
}

// eachCell calls fn with the board coordinates and value of every filled cell.
func (p Piece) eachCell(fn func(row, col int, c Cell) bool) {
	for r, line := range p.Shape {
		for c, v := range line {
			if v == CellEmpty {
				continue
			}
			if !fn(p.Row+r, p.Col+c, v) {
				return
			}
		}
	}
}

// Cells returns the board coordinates of every filled cell as (row, col) pairs.
func (p Piece) Cells() [][2]int {
	var out [][2]int
	p.eachCell(func(row, col int, _ Cell) bool {
		out = append(out, [2]int{row, col})
		return true
	})
	return out
}
