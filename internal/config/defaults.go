package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris rules.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Grid: GridConfig{
			Format: string(FormatStandard),
		},
		Timing: TimingConfig{
			AutoFallMs:              900,
			ClearedLineFlashMs:      500,
			SpecialActiveMs:         3000,
			CoffeeFlashMs:           3000,
			LegendaryGravityDelayMs: 300,
			FireBurnIntervalMs:      1500,
			FireBurnCount:           2,
		},
		Spawn: SpawnConfig{
			ColorCleaner: ChanceRule{MinLevel: 10, Chance: 0.01},
			Nuclear:      ChanceRule{MinLevel: 13, Chance: 0.01},
			Advanced:     AdvancedRule{MinLevel: 11, Step: 0.05, Max: 0.30},
			Rarity:       ChanceRule{MinLevel: 5, Chance: 0.15},
			Special:      ChanceRule{MinLevel: 3, Chance: 0.05},
		},
		Shop: ShopConfig{
			RainbowPrice:  1000,
			AICustomPrice: 1500,
			AICustomBonus: 50,
		},
		Effects: EffectsConfig{
			ContinuousBurn: true,
		},
	}
}

// Normalize replaces unusable values with defaults so the engine never
// sees a zero cadence or an out-of-range probability.
func (c *TetrisConfig) Normalize() {
	def := DefaultTetrisConfig()

	c.Grid.Format = string(ParseGridFormat(c.Grid.Format))

	positive := func(v *int, fallback int) {
		if *v <= 0 {
			*v = fallback
		}
	}
	positive(&c.Timing.AutoFallMs, def.Timing.AutoFallMs)
	positive(&c.Timing.ClearedLineFlashMs, def.Timing.ClearedLineFlashMs)
	positive(&c.Timing.SpecialActiveMs, def.Timing.SpecialActiveMs)
	positive(&c.Timing.CoffeeFlashMs, def.Timing.CoffeeFlashMs)
	positive(&c.Timing.LegendaryGravityDelayMs, def.Timing.LegendaryGravityDelayMs)
	positive(&c.Timing.FireBurnIntervalMs, def.Timing.FireBurnIntervalMs)
	if c.Timing.FireBurnCount < 0 {
		c.Timing.FireBurnCount = 0
	}

	positive(&c.Shop.RainbowPrice, def.Shop.RainbowPrice)
	positive(&c.Shop.AICustomPrice, def.Shop.AICustomPrice)
	if c.Shop.AICustomBonus < 0 {
		c.Shop.AICustomBonus = 0
	}

	rules := []struct{ got, def *ChanceRule }{
		{&c.Spawn.ColorCleaner, &def.Spawn.ColorCleaner},
		{&c.Spawn.Nuclear, &def.Spawn.Nuclear},
		{&c.Spawn.Rarity, &def.Spawn.Rarity},
		{&c.Spawn.Special, &def.Spawn.Special},
	}
	for _, r := range rules {
		r.got.Chance = clampF(r.got.Chance, 0, 1, r.def.Chance)
	}
	c.Spawn.Advanced.Step = clampF(c.Spawn.Advanced.Step, 0, 1, def.Spawn.Advanced.Step)
	c.Spawn.Advanced.Max = clampF(c.Spawn.Advanced.Max, 0, 1, def.Spawn.Advanced.Max)
}

// clampF restricts a float64 to [min, max]. NaN becomes fallback.
func clampF(val, min, max, fallback float64) float64 {
	if math.IsNaN(val) {
		return fallback
	}
	return math.Max(min, math.Min(max, val))
}
