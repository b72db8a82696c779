package tetris

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tetris-arcade/internal/config"
)

// catalogEntry pairs a shape with its type value.
type catalogEntry struct {
	Type  Cell
	Shape Shape
}

// standardPieces are the seven classic shapes, colors 1-7.
var standardPieces = []catalogEntry{
	{1, Shape{{1, 1, 1, 1}}},
	{2, Shape{{2, 2}, {2, 2}}},
	{3, Shape{{0, 3, 0}, {3, 3, 3}}},
	{4, Shape{{0, 4, 4}, {4, 4, 0}}},
	{5, Shape{{5, 5, 0}, {0, 5, 5}}},
	{6, Shape{{6, 0, 0}, {6, 6, 6}}},
	{7, Shape{{0, 0, 7}, {7, 7, 7}}},
}

// advancedPieces unlock at higher levels, types 9-12.
var advancedPieces = []catalogEntry{
	{9, Shape{{9, 9, 9}, {0, 9, 0}, {0, 9, 0}}},
	{10, Shape{{10, 10, 10}, {10, 0, 0}, {10, 0, 0}}},
	{11, Shape{{11, 0, 11}, {11, 11, 11}}},
	{12, Shape{{12, 12, 12}, {12, 0, 0}, {12, 12, 12}}},
}

// catalog is every cyclable shape in order: standard then advanced.
var catalog = append(append([]catalogEntry(nil), standardPieces...), advancedPieces...)

// CatalogShapes returns copies of all eleven catalog shapes in cycle order.
func CatalogShapes() []Shape {
	out := make([]Shape, len(catalog))
	for i, e := range catalog {
		out[i] = e.Shape.Clone()
	}
	return out
}

// catalogIndex finds a shape in the catalog by equality, or -1.
func catalogIndex(s Shape) int {
	for i, e := range catalog {
		if e.Shape.Equal(s) {
			return i
		}
	}
	return -1
}

// Spawn rule names.
const (
	RuleColorCleaner = "color-cleaner"
	RuleNuclear      = "nuclear"
	RuleRarity       = "rarity"
	RuleSpecial      = "special"
)

// spawnRule is one entry of an ordered spawn table. Rules are evaluated in
// order and the first whose level gate passes and whose roll succeeds wins;
// the RNG is only consumed once the level gate passes.
type spawnRule struct {
	name     string
	minLevel int
	chance   func(level int) float64
	build    func(g *Generator, level int) Piece
}

// Generator produces pieces for one board width from a seeded RNG.
type Generator struct {
	rng   *rand.Rand
	width int
	spawn config.SpawnConfig

	overrides []spawnRule // checked by Random before the standard draw
	next      []spawnRule // checked by Next before falling back to Random
}

// NewGenerator creates a generator for a board of the given width.
func NewGenerator(rng *rand.Rand, width int, spawn config.SpawnConfig) *Generator {
	g := &Generator{rng: rng, width: width, spawn: spawn}
	fixed := func(p float64) func(int) float64 { return func(int) float64 { return p } }

	g.overrides = []spawnRule{
		{name: RuleColorCleaner, minLevel: spawn.ColorCleaner.MinLevel, chance: fixed(spawn.ColorCleaner.Chance),
			build: func(g *Generator, _ int) Piece { return g.ColorCleaner() }},
		{name: RuleNuclear, minLevel: spawn.Nuclear.MinLevel, chance: fixed(spawn.Nuclear.Chance),
			build: func(g *Generator, _ int) Piece { return g.Nuclear() }},
	}
	g.next = []spawnRule{
		{name: RuleRarity, minLevel: spawn.Rarity.MinLevel, chance: fixed(spawn.Rarity.Chance),
			build: func(g *Generator, _ int) Piece { return g.RarityPiece() }},
		{name: RuleSpecial, minLevel: spawn.Special.MinLevel, chance: fixed(spawn.Special.Chance),
			build: func(g *Generator, _ int) Piece { return g.Special() }},
	}
	return g
}

// SetWidth changes the board width used to center new pieces.
func (g *Generator) SetWidth(width int) {
	g.width = width
}

// firstMatch evaluates rules in order and builds the first that fires.
func (g *Generator) firstMatch(rules []spawnRule, level int) (Piece, spawnRule, bool) {
	for _, r := range rules {
		if level < r.minLevel {
			continue
		}
		if g.rng.Float64() < r.chance(level) {
			return r.build(g, level), r, true
		}
	}
	return Piece{}, spawnRule{}, false
}

// AdvancedChance returns the probability that Random draws from the
// advanced pool at the given level.
func (g *Generator) AdvancedChance(level int) float64 {
	a := g.spawn.Advanced
	if level < a.MinLevel {
		return 0
	}
	return math.Min(a.Max, float64(level-a.MinLevel+1)*a.Step)
}

// Random returns a standard or advanced piece for the level, unless one of
// the rare override rules (color cleaner, then nuclear) fires first.
func (g *Generator) Random(level int) Piece {
	if p, _, ok := g.firstMatch(g.overrides, level); ok {
		return p
	}

	pool := standardPieces
	kind := KindStandard
	if level >= g.spawn.Advanced.MinLevel && g.rng.Float64() < g.AdvancedChance(level) {
		pool = advancedPieces
		kind = KindAdvanced
	}
	e := pool[g.rng.Intn(len(pool))]
	return g.fromEntry(e, kind, RarityNone)
}

// Next rolls the piece that will follow the current one: the rarity rule
// first, then the special rule, then Random. It also returns the name of
// the rule that fired, or "" when the piece came from Random.
func (g *Generator) Next(level int) (Piece, string) {
	if p, rule, ok := g.firstMatch(g.next, level); ok {
		return p, rule.name
	}
	return g.Random(level), ""
}

// Special picks uniformly among the neutrino, fire and acid generators.
func (g *Generator) Special() Piece {
	switch g.rng.Intn(3) {
	case 0:
		return g.Neutrino()
	case 1:
		return g.Fire()
	default:
		return g.Acid()
	}
}

// RarityPiece picks a tier uniformly. Legendary yields a fire block (60%),
// a color cleaner (20%) or a legendary standard piece; rare yields an acid
// block 30% of the time; everything else is a tagged standard piece.
func (g *Generator) RarityPiece() Piece {
	rarity := []Rarity{RarityUncommon, RarityRare, RarityLegendary}[g.rng.Intn(3)]

	switch rarity {
	case RarityLegendary:
		roll := g.rng.Float64()
		switch {
		case roll < 0.6:
			return g.Fire()
		case roll < 0.8:
			return g.ColorCleaner()
		}
	case RarityRare:
		if g.rng.Float64() < 0.3 {
			return g.Acid()
		}
	}
	return g.fromEntry(standardPieces[g.rng.Intn(len(standardPieces))], KindStandard, rarity)
}

// Rainbow returns a type-8 piece with a shape drawn from the full catalog.
func (g *Generator) Rainbow() Piece {
	e := catalog[g.rng.Intn(len(catalog))]
	p := g.fromEntry(e, KindRainbow, RarityNone)
	p.Type = CellRainbow
	return p
}

// Neutrino returns a single rare cell that phases to the lowest hole of its column.
func (g *Generator) Neutrino() Piece {
	return g.single(CellNeutrino, KindNeutrino, RarityRare, CellEmpty)
}

// Fire returns a legendary fire block targeting a random standard color.
func (g *Generator) Fire() Piece {
	return g.single(CellFire, KindFire, RarityLegendary, g.randomColor())
}

// Acid returns a rare acid block.
func (g *Generator) Acid() Piece {
	return g.single(CellFire, KindAcid, RarityRare, CellEmpty)
}

// ColorCleaner returns a legendary block that removes one color from the board.
func (g *Generator) ColorCleaner() Piece {
	return g.single(CellColorCleaner, KindColorCleaner, RarityLegendary, g.randomColor())
}

// Nuclear returns the legendary 2x2 nuclear block.
func (g *Generator) Nuclear() Piece {
	return Piece{
		Shape:  Shape{{CellNuclear, CellNuclear}, {CellNuclear, CellNuclear}},
		Col:    g.width/2 - 1,
		Type:   CellNuclear,
		Kind:   KindNuclear,
		Rarity: RarityLegendary,
	}
}

// AIOptimized synthesizes a shape sized to the widest empty run in the top
// eight rows of the board. Ties keep the first run found scanning top-down,
// left to right. With no empty run a random standard piece is returned.
func (g *Generator) AIOptimized(b *Board) Piece {
	gap, ok := WidestTopGap(b, 8)
	if !ok {
		return g.fromEntry(standardPieces[g.rng.Intn(len(standardPieces))], KindStandard, RarityNone)
	}

	const t = CellAICustom
	var shape Shape
	switch {
	case gap.Width == 1:
		shape = Shape{{t, t, t, t}}
	case gap.Width == 2:
		if g.rng.Float64() < 0.5 {
			shape = Shape{{t, t}, {t, t}}
		} else {
			shape = Shape{{t, t}}
		}
	case gap.Width == 3:
		if g.rng.Float64() < 0.7 {
			shape = Shape{{0, t, 0}, {t, t, t}}
		} else {
			shape = Shape{{t, t, t}}
		}
	case gap.Width == 4:
		shape = Shape{{t, t, t, t}}
	default:
		shape = Shape{{t, t, t}, {0, t, 0}, {0, t, 0}}
	}
	return Piece{
		Shape:  shape,
		Col:    spawnCol(g.width, shape.Width()),
		Type:   t,
		Kind:   KindAICustom,
		Rarity: RarityRare,
	}
}

// randomColor draws a standard color 1-7.
func (g *Generator) randomColor() Cell {
	return Cell(g.rng.Intn(int(MaxStandardColor))) + 1
}

// single builds a 1x1 piece centered on floor(width/2).
func (g *Generator) single(c Cell, kind Kind, rarity Rarity, target Cell) Piece {
	return Piece{
		Shape:  Shape{{c}},
		Col:    g.width / 2,
		Type:   c,
		Kind:   kind,
		Rarity: rarity,
		Target: target,
	}
}

// fromEntry copies a catalog entry into a centered piece at row 0.
func (g *Generator) fromEntry(e catalogEntry, kind Kind, rarity Rarity) Piece {
	return Piece{
		Shape:  e.Shape.Clone(),
		Col:    spawnCol(g.width, e.Shape.Width()),
		Type:   e.Type,
		Kind:   kind,
		Rarity: rarity,
	}
}

// spawnCol centers a shape of width w on a board of width boardW.
func spawnCol(boardW, w int) int {
	return boardW/2 - w/2
}
