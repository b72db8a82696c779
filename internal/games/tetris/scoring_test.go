package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	std := Piece{Kind: KindStandard}
	tests := []struct {
		name     string
		in       ScoreInput
		expected int
	}{
		{"placement only", ScoreInput{Level: 1, Piece: std}, 10},
		{"single line", ScoreInput{Lines: 1, Level: 1, Piece: std}, 110},
		{"double line wide", ScoreInput{Lines: 2, Level: 1, Piece: std, Wide: true}, 1890},
		{"wide without lines", ScoreInput{Level: 3, Piece: std, Wide: true}, 10},
		{"level scales base", ScoreInput{Lines: 1, Level: 3, Piece: std}, 310},
		{"combo 2", ScoreInput{Lines: 1, Level: 1, Combo: 2, Piece: std}, 247},
		{"same color", ScoreInput{Lines: 1, Level: 1, SameColorLines: 1, Piece: std}, 660},
		{"rare", ScoreInput{Lines: 1, Level: 1, Piece: Piece{Kind: KindStandard, Rarity: RarityRare}}, 220},
		{"uncommon floors", ScoreInput{Lines: 0, Level: 1, Combo: 1, Piece: Piece{Rarity: RarityUncommon}}, 22},
		{"legendary fire", ScoreInput{Level: 1, Piece: Piece{Type: CellFire, Kind: KindFire, Rarity: RarityLegendary}}, 60},
		{"nuclear", ScoreInput{Level: 2, Piece: Piece{Kind: KindNuclear, Rarity: RarityLegendary}}, 150},
		{"acid", ScoreInput{Lines: 1, Level: 1, Piece: Piece{Type: CellFire, Kind: KindAcid, Rarity: RarityRare}}, 1100},
		{"rainbow fire", ScoreInput{Level: 1, Piece: Piece{Type: CellRainbow, Kind: KindFire, Rarity: RarityLegendary}}, 30},
		{"color cleaner", ScoreInput{Level: 1, Piece: Piece{Kind: KindColorCleaner, Rarity: RarityLegendary}}, 90},
		{"advanced", ScoreInput{Lines: 1, Level: 11, Piece: Piece{Kind: KindAdvanced}}, 1387},
		{"neutrino", ScoreInput{Lines: 1, Level: 1, Piece: Piece{Kind: KindNeutrino, Rarity: RarityRare}}, 330},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.in))
		})
	}
}

func TestCoffeeBonus(t *testing.T) {
	legendary := Piece{Kind: KindStandard, Rarity: RarityLegendary}
	assert.Equal(t, 100, CoffeeBonus(ScoreInput{Lines: 1, Combo: 2, Piece: legendary}))
	assert.Equal(t, 0, CoffeeBonus(ScoreInput{Lines: 0, Combo: 2, Piece: legendary}))
	assert.Equal(t, 0, CoffeeBonus(ScoreInput{Lines: 1, Combo: 0, Piece: legendary}))
	assert.Equal(t, 0, CoffeeBonus(ScoreInput{Lines: 1, Combo: 2, Piece: Piece{Rarity: RarityRare}}))
}

func TestHasSpecialModifier(t *testing.T) {
	assert.False(t, HasSpecialModifier(ScoreInput{Lines: 1, Piece: Piece{Rarity: RarityLegendary}}))
	assert.True(t, HasSpecialModifier(ScoreInput{Piece: Piece{Kind: KindAdvanced}}))
	assert.True(t, HasSpecialModifier(ScoreInput{SameColorLines: 1}))
	assert.True(t, HasSpecialModifier(ScoreInput{Wide: true}))
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		lines, level int
	}{
		{0, 1}, {9, 1}, {10, 2}, {19, 2}, {20, 3}, {105, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.lines), "lines=%d", tt.lines)
	}
}
