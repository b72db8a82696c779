package tetris

import (
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tetris-arcade/internal/core"
)

// Visual characters for rendering
const (
	BlockChar   = '█'
	GhostChar   = '░'
	FlashChar   = '▒'
	EmptyChar   = '·'
	panelWidth  = 26
	panelMargin = 2
)

// cellColors maps cell values to screen colors.
var cellColors = map[Cell]core.Color{
	1:                core.ColorCyan,
	2:                core.ColorYellow,
	3:                core.ColorMagenta,
	4:                core.ColorGreen,
	5:                core.ColorRed,
	6:                core.ColorBlue,
	7:                core.ColorOrange,
	CellRainbow:      core.ColorBrightWhite,
	9:                core.ColorBrightMagenta,
	10:               core.ColorBrightCyan,
	11:               core.ColorBrightGreen,
	12:               core.ColorBrightYellow,
	CellNuclear:      core.ColorBrightGreen,
	CellFire:         core.ColorBrightRed,
	CellColorCleaner: core.ColorWhite,
	CellNeutrino:     core.ColorBrightBlue,
	CellAICustom:     core.ColorBrightCyan,
}

// rainbowCycle is the color sequence a rainbow piece shimmers through.
var rainbowCycle = []core.Color{
	core.ColorRed, core.ColorOrange, core.ColorYellow, core.ColorGreen,
	core.ColorCyan, core.ColorBlue, core.ColorMagenta,
}

// ColorFor returns the screen color of a cell value.
func ColorFor(c Cell) core.Color {
	if col, ok := cellColors[c]; ok {
		return col
	}
	return core.ColorDefault
}

// Render draws the board, current and ghost piece, and the side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	snap := g.session.Snapshot()

	cw := 2
	if dst.Width() < snap.Width*2+2+panelMargin+panelWidth {
		cw = 1
	}
	boardW := snap.Width*cw + 2
	boardH := snap.Height + 2
	totalW := boardW + panelMargin + panelWidth
	if dst.Width() < totalW || dst.Height() < boardH {
		g.renderTooSmall(dst, totalW, boardH)
		return
	}

	boardX := (dst.Width() - totalW) / 2
	boardY := (dst.Height() - boardH) / 2

	g.renderBoard(dst, &snap, boardX, boardY, cw)
	g.renderPanel(dst, &snap, boardX+boardW+panelMargin, boardY)

	switch {
	case snap.GameOver:
		g.renderOverlay(dst, boardX, boardY, boardW, boardH,
			"GAME OVER", fmt.Sprintf("Score %d", snap.Score), "R restart  G format")
	case snap.Paused:
		g.renderOverlay(dst, boardX, boardY, boardW, boardH, "PAUSED", "P to resume")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen, needW, needH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", needW, needH))
}

// renderBoard draws the well, settled cells, the ghost and the falling piece.
func (g *Game) renderBoard(dst *core.Screen, snap *Snapshot, x0, y0, cw int) {
	dst.DrawBox(core.Rect{X: x0, Y: y0, W: snap.Width*cw + 2, H: snap.Height + 2})

	flash := intmap.New[int, bool](4)
	for _, r := range snap.ClearedLines {
		flash.Put(r, true)
	}

	put := func(row, col int, r rune, c core.Color) {
		for i := range cw {
			dst.SetColored(x0+1+col*cw+i, y0+1+row, r, c)
		}
	}

	for row := range snap.Height {
		for col := range snap.Width {
			v := Cell(snap.Board[row][col])
			switch {
			case v != CellEmpty:
				put(row, col, BlockChar, ColorFor(v))
			case flash.Has(row):
				put(row, col, FlashChar, core.ColorBrightWhite)
			case cw == 2:
				dst.SetColored(x0+1+col*cw, y0+1+row, ' ', core.ColorDefault)
				dst.SetColored(x0+2+col*cw, y0+1+row, EmptyChar, core.ColorGray)
			default:
				put(row, col, EmptyChar, core.ColorGray)
			}
		}
	}

	p := snap.Current
	if p == nil || snap.GameOver {
		return
	}
	shimmer := rainbowCycle[int(snap.ClockMs/150)%len(rainbowCycle)]
	for r, line := range p.Shape {
		for c, v := range line {
			if v == 0 {
				continue
			}
			if ghost := snap.GhostRow + r; ghost != p.Row+r {
				put(ghost, p.Col+c, GhostChar, core.ColorGray)
			}
		}
	}
	for r, line := range p.Shape {
		for c, v := range line {
			if v == 0 {
				continue
			}
			color := ColorFor(Cell(v))
			if Cell(p.Type) == CellRainbow {
				color = shimmer
			}
			put(p.Row+r, p.Col+c, BlockChar, color)
		}
	}
}

// renderPanel draws score, next piece, inventory and key help.
func (g *Game) renderPanel(dst *core.Screen, snap *Snapshot, x, y int) {
	dst.DrawTextColored(x, y, g.Title(), core.ColorBrightCyan)
	dst.DrawText(x, y+2, fmt.Sprintf("Score  %d", snap.Score))
	dst.DrawText(x, y+3, fmt.Sprintf("Level  %d", snap.Level))
	dst.DrawText(x, y+4, fmt.Sprintf("Lines  %d", snap.Lines))
	dst.DrawText(x, y+5, fmt.Sprintf("Combo  %d", snap.Combo))

	dst.DrawText(x, y+7, "Next")
	if n := snap.Next; n != nil {
		for r, line := range n.Shape {
			for c, v := range line {
				if v != 0 {
					dst.SetColored(x+c*2, y+8+r, BlockChar, ColorFor(Cell(v)))
					dst.SetColored(x+c*2+1, y+8+r, BlockChar, ColorFor(Cell(v)))
				}
			}
		}
		if n.Rarity != "" {
			dst.DrawTextColored(x+8, y+8, n.Rarity, rarityColor(n.Rarity))
		}
		if n.Kind != KindStandard.String() {
			dst.DrawTextColored(x+8, y+9, n.Kind, core.ColorBrightYellow)
		}
	}

	dst.DrawText(x, y+12, fmt.Sprintf("Rainbow %d  AI %d", snap.RainbowBlocks, snap.AICustomBlocks))
	coffee := fmt.Sprintf("Coffee  %d", snap.CoffeeBonus)
	if snap.ShowCoffee {
		dst.DrawTextColored(x, y+13, coffee+" +", core.ColorOrange)
	} else {
		dst.DrawText(x, y+13, coffee)
	}

	status := ""
	switch {
	case snap.SpecialActive:
		status = "SPECIAL"
	case snap.GravityActive:
		status = "GRAVITY"
	}
	dst.DrawTextColored(x, y+14, status, core.ColorBrightMagenta)
	dst.DrawText(x, y+15, fmt.Sprintf("Hint %s  Holes %d", snap.Analysis.Hint, snap.Analysis.Holes))

	help := []string{
		"←→ move  ↓ soft  ␣ drop",
		"↑/W rotate  C cycle",
		"1/2 buy  3/4 use  P pause",
	}
	for i, line := range help {
		dst.DrawTextColored(x, y+17+i, line, core.ColorGray)
	}
}

// renderOverlay draws a centered message box over the board.
func (g *Game) renderOverlay(dst *core.Screen, bx, by, bw, bh int, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := min(maxLen+4, bw)
	boxH := len(lines) + 2
	box := core.Rect{X: bx + (bw-boxW)/2, Y: by + (bh-boxH)/2, W: boxW, H: boxH}
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, core.ColorBrightWhite)
	}
}

func rarityColor(r string) core.Color {
	switch r {
	case RarityLegendary.String():
		return core.ColorOrange
	case RarityRare.String():
		return core.ColorBrightBlue
	default:
		return core.ColorGreen
	}
}
