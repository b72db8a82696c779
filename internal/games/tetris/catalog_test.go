package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-arcade/internal/config"
)

func newGen(seed int64, width int, mutate func(*config.SpawnConfig)) *Generator {
	spawn := config.DefaultTetrisConfig().Spawn
	if mutate != nil {
		mutate(&spawn)
	}
	return NewGenerator(rand.New(rand.NewSource(seed)), width, spawn)
}

func TestCatalogShapes(t *testing.T) {
	shapes := CatalogShapes()
	require.Len(t, shapes, 11)
	assert.Equal(t, Shape{{1, 1, 1, 1}}, shapes[0])
	assert.Equal(t, Shape{{12, 12, 12}, {12, 0, 0}, {12, 12, 12}}, shapes[10])

	shapes[0][0][0] = 42
	assert.Equal(t, Cell(1), catalog[0].Shape[0][0], "CatalogShapes must return copies")

	assert.Equal(t, 2, catalogIndex(Shape{{0, 3, 0}, {3, 3, 3}}))
	assert.Equal(t, -1, catalogIndex(Shape{{99}}))
}

func TestRandomBelowAdvancedLevels(t *testing.T) {
	g := newGen(1, 10, nil)
	for range 500 {
		p := g.Random(1)
		require.GreaterOrEqual(t, p.Type, Cell(1))
		require.LessOrEqual(t, p.Type, MaxStandardColor)
		assert.Equal(t, KindStandard, p.Kind)
		assert.Equal(t, RarityNone, p.Rarity)
		assert.Equal(t, 0, p.Row)
		assert.Equal(t, 5-p.Shape.Width()/2, p.Col)
	}
}

func TestRandomAdvancedPool(t *testing.T) {
	g := newGen(2, 20, func(s *config.SpawnConfig) {
		s.Advanced = config.AdvancedRule{MinLevel: 11, Step: 1, Max: 1}
		s.ColorCleaner.Chance = 0
	})
	for range 100 {
		p := g.Random(11)
		require.GreaterOrEqual(t, p.Type, Cell(9))
		require.LessOrEqual(t, p.Type, Cell(12))
		assert.Equal(t, KindAdvanced, p.Kind)
		assert.Equal(t, 10-p.Shape.Width()/2, p.Col)
	}
}

func TestAdvancedChance(t *testing.T) {
	g := newGen(1, 10, nil)
	assert.Equal(t, 0.0, g.AdvancedChance(10))
	assert.InDelta(t, 0.05, g.AdvancedChance(11), 1e-9)
	assert.InDelta(t, 0.10, g.AdvancedChance(12), 1e-9)
	assert.InDelta(t, 0.30, g.AdvancedChance(16), 1e-9)
	assert.InDelta(t, 0.30, g.AdvancedChance(40), 1e-9)
}

func TestRandomOverrideOrder(t *testing.T) {
	always := func(s *config.SpawnConfig) {
		s.ColorCleaner.Chance = 1
		s.Nuclear.Chance = 1
	}

	g := newGen(3, 10, always)
	assert.Equal(t, KindStandard, g.Random(9).Kind, "below every gate")
	assert.Equal(t, KindColorCleaner, g.Random(10).Kind)
	assert.Equal(t, KindColorCleaner, g.Random(13).Kind, "color cleaner is checked before nuclear")

	g = newGen(3, 10, func(s *config.SpawnConfig) {
		always(s)
		s.ColorCleaner.Chance = 0
	})
	p := g.Random(13)
	assert.Equal(t, KindNuclear, p.Kind)
	assert.Equal(t, 4, p.Col)
	assert.Equal(t, RarityLegendary, p.Rarity)
	assert.NotEqual(t, KindNuclear, g.Random(12).Kind)
}

func TestNextRuleOrder(t *testing.T) {
	g := newGen(4, 10, func(s *config.SpawnConfig) {
		s.Rarity.Chance = 1
		s.Special.Chance = 1
	})

	_, rule := g.Next(2)
	assert.Equal(t, "", rule)

	p, rule := g.Next(3)
	assert.Equal(t, RuleSpecial, rule)
	assert.Contains(t, []Kind{KindNeutrino, KindFire, KindAcid}, p.Kind)

	_, rule = g.Next(5)
	assert.Equal(t, RuleRarity, rule, "rarity roll takes precedence")
}

func TestSpecialPieces(t *testing.T) {
	g := newGen(5, 10, nil)
	seen := map[Kind]bool{}
	for range 300 {
		p := g.Special()
		seen[p.Kind] = true
		require.Equal(t, 1, p.Shape.Height())
		require.Equal(t, 1, p.Shape.Width())
		assert.Equal(t, 5, p.Col)
		switch p.Kind {
		case KindFire:
			assert.Equal(t, CellFire, p.Type)
			assert.Equal(t, RarityLegendary, p.Rarity)
			assert.True(t, p.Target >= 1 && p.Target <= MaxStandardColor, "fire target %d", p.Target)
		case KindAcid:
			assert.Equal(t, CellFire, p.Type)
			assert.Equal(t, RarityRare, p.Rarity)
		case KindNeutrino:
			assert.Equal(t, CellNeutrino, p.Type)
			assert.Equal(t, RarityRare, p.Rarity)
		default:
			t.Fatalf("unexpected special kind %s", p.Kind)
		}
	}
	assert.Len(t, seen, 3)
}

func TestRarityPieces(t *testing.T) {
	g := newGen(6, 10, nil)
	seen := map[string]bool{}
	for range 1000 {
		p := g.RarityPiece()
		require.NotEqual(t, RarityNone, p.Rarity)
		switch p.Kind {
		case KindFire, KindColorCleaner:
			assert.Equal(t, RarityLegendary, p.Rarity)
		case KindAcid:
			assert.Equal(t, RarityRare, p.Rarity)
		case KindStandard:
			assert.LessOrEqual(t, p.Type, MaxStandardColor)
		default:
			t.Fatalf("unexpected rarity kind %s", p.Kind)
		}
		seen[p.Kind.String()+"/"+p.Rarity.String()] = true
	}
	for _, k := range []string{"fire/legendary", "color-cleaner/legendary", "standard/legendary",
		"acid/rare", "standard/rare", "standard/uncommon"} {
		assert.True(t, seen[k], "never generated %s", k)
	}
}

func TestRainbowPiece(t *testing.T) {
	g := newGen(7, 10, nil)
	for range 50 {
		p := g.Rainbow()
		assert.Equal(t, CellRainbow, p.Type)
		assert.Equal(t, KindRainbow, p.Kind)
		assert.NotEqual(t, -1, catalogIndex(p.Shape))
	}
}

func TestAIOptimizedWidthThree(t *testing.T) {
	b := NewBoard(10, 20)
	for row := range 8 {
		fillRow(b, row, 1)
	}
	fillRow(b, 2, 1, 4, 5, 6)

	tBar := Shape{{0, 99, 0}, {99, 99, 99}}
	bar := Shape{{99, 99, 99}}
	seen := map[bool]bool{}
	for seed := range int64(60) {
		p := newGen(seed, 10, nil).AIOptimized(b)
		isT := p.Shape.Equal(tBar)
		require.True(t, isT || p.Shape.Equal(bar), "unexpected shape %v", p.Shape)
		seen[isT] = true
		assert.Equal(t, CellAICustom, p.Type)
		assert.Equal(t, KindAICustom, p.Kind)
		assert.Equal(t, RarityRare, p.Rarity)
		assert.Equal(t, 4, p.Col)
	}
	assert.Len(t, seen, 2, "both width-3 shapes should appear across seeds")
}

func TestAIOptimizedShapes(t *testing.T) {
	const a = CellAICustom
	tests := []struct {
		name  string
		holes []int
		shape Shape
	}{
		{"width 1", []int{3}, Shape{{a, a, a, a}}},
		{"width 4", []int{0, 1, 2, 3}, Shape{{a, a, a, a}}},
		{"width 5", []int{2, 3, 4, 5, 6}, Shape{{a, a, a}, {0, a, 0}, {0, a, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 20)
			for row := range 8 {
				fillRow(b, row, 1)
			}
			fillRow(b, 5, 1, tt.holes...)
			p := newGen(1, 10, nil).AIOptimized(b)
			assert.Equal(t, tt.shape, p.Shape)
		})
	}
}

func TestAIOptimizedFallback(t *testing.T) {
	b := NewBoard(10, 20)
	for row := range 8 {
		fillRow(b, row, 1)
	}
	p := newGen(1, 10, nil).AIOptimized(b)
	assert.Equal(t, KindStandard, p.Kind)
	assert.LessOrEqual(t, p.Type, MaxStandardColor)
}

func TestWidestTopGapTies(t *testing.T) {
	b := NewBoard(10, 20)
	for row := range 8 {
		fillRow(b, row, 1)
	}
	fillRow(b, 1, 1, 7, 8)
	fillRow(b, 3, 1, 0, 1)
	gap, ok := WidestTopGap(b, 8)
	require.True(t, ok)
	assert.Equal(t, Gap{Row: 1, Start: 7, Width: 2}, gap)

	gaps := TopGaps(NewBoard(10, 20), 8)
	assert.Len(t, gaps, 8)
	assert.Equal(t, 10, gaps[0].Width)
}
