package tetris

import "math"

// LinesPerLevel is the number of cleared lines per level step.
const LinesPerLevel = 10

// CoffeePerCombo is the coffee bonus per combo step for legendary clears.
const CoffeePerCombo = 50

// ScoreInput is everything the score formula depends on for one landing.
type ScoreInput struct {
	Lines          int   // lines cleared by this landing
	Level          int   // level before this landing's lines are added
	Combo          int   // combo count before this landing
	SameColorLines int   // cleared lines made of a single value
	Piece          Piece // the landed piece
	Wide           bool  // wide grid format
}

// Multiplier returns the product of every score multiplier for the landing.
func Multiplier(in ScoreInput) float64 {
	m := 1.0
	if in.Combo > 0 {
		m *= math.Pow(1.5, float64(in.Combo))
	}
	m *= in.Piece.Rarity.Multiplier()
	// Acid shares the fire cell and earns both factors.
	if in.Piece.Type == CellFire {
		m *= 2.0
	}
	switch in.Piece.Kind {
	case KindNuclear:
		m *= 5.0
	case KindAcid:
		m *= 2.5
	case KindColorCleaner:
		m *= 3.0
	case KindAdvanced:
		m *= 1.25
	case KindNeutrino:
		m *= 1.5
	}
	if in.SameColorLines > 0 {
		m *= math.Pow(6, float64(in.SameColorLines))
	}
	if in.Wide {
		m *= math.Pow(3, float64(in.Lines))
	}
	return m
}

// Score returns floor((lines*100*level + 10) * Multiplier(in)).
func Score(in ScoreInput) int {
	base := float64(in.Lines*100*in.Level + 10)
	return int(math.Floor(base * Multiplier(in)))
}

// CoffeeBonus returns the extra points a legendary piece earns when it
// extends a combo with at least one cleared line.
func CoffeeBonus(in ScoreInput) int {
	if in.Piece.Rarity != RarityLegendary || in.Combo <= 0 || in.Lines <= 0 {
		return 0
	}
	return in.Combo * CoffeePerCombo
}

// HasSpecialModifier reports whether the landing earned a modifier beyond
// combo and rarity; such landings announce a special-block event instead of
// a plain score event.
func HasSpecialModifier(in ScoreInput) bool {
	switch in.Piece.Kind {
	case KindNuclear, KindAcid, KindColorCleaner, KindNeutrino, KindAdvanced:
		return true
	}
	return in.Piece.Type == CellFire || in.SameColorLines > 0 || in.Wide
}

// LevelFor derives the level from the cumulative line count.
func LevelFor(totalLines int) int {
	return totalLines/LinesPerLevel + 1
}
