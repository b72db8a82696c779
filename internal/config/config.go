// Package config provides YAML-based rules configuration loading and
// difficulty presets for the tetris engine.
package config

// TetrisConfig contains all tunable rules for the tetris engine.
type TetrisConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Timing  TimingConfig  `yaml:"timing"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Shop    ShopConfig    `yaml:"shop"`
	Effects EffectsConfig `yaml:"effects"`
}

// GridConfig selects the board format.
type GridConfig struct {
	Format string `yaml:"format"` // "standard" (10x20) or "wide" (20x40)
}

// TimingConfig holds every duration the session schedules, in milliseconds.
type TimingConfig struct {
	AutoFallMs              int `yaml:"auto_fall_ms"`
	ClearedLineFlashMs      int `yaml:"cleared_line_flash_ms"`
	SpecialActiveMs         int `yaml:"special_active_ms"`
	CoffeeFlashMs           int `yaml:"coffee_flash_ms"`
	LegendaryGravityDelayMs int `yaml:"legendary_gravity_delay_ms"`
	FireBurnIntervalMs      int `yaml:"fire_burn_interval_ms"`
	FireBurnCount           int `yaml:"fire_burn_count"`
}

// SpawnConfig holds the level gates and probabilities of the piece spawn rules.
type SpawnConfig struct {
	ColorCleaner ChanceRule   `yaml:"color_cleaner"`
	Nuclear      ChanceRule   `yaml:"nuclear"`
	Advanced     AdvancedRule `yaml:"advanced"`
	Rarity       ChanceRule   `yaml:"rarity"`
	Special      ChanceRule   `yaml:"special"`
}

// ChanceRule fires with Chance once the level reaches MinLevel.
type ChanceRule struct {
	MinLevel int     `yaml:"min_level"`
	Chance   float64 `yaml:"chance"`
}

// AdvancedRule grows the advanced-shape chance by Step per level above
// MinLevel-1, capped at Max.
type AdvancedRule struct {
	MinLevel int     `yaml:"min_level"`
	Step     float64 `yaml:"step"`
	Max      float64 `yaml:"max"`
}

// ShopConfig defines power-up prices.
type ShopConfig struct {
	RainbowPrice  int `yaml:"rainbow_price"`
	AICustomPrice int `yaml:"ai_custom_price"`
	AICustomBonus int `yaml:"ai_custom_bonus"`
}

// EffectsConfig toggles optional block effects.
type EffectsConfig struct {
	ContinuousBurn bool `yaml:"continuous_burn"`
}

// GridFormat names a board variant.
type GridFormat string

const (
	FormatStandard GridFormat = "standard"
	FormatWide     GridFormat = "wide"
)

// ParseGridFormat maps a format name to a GridFormat.
// Unknown values fail closed to FormatStandard.
func ParseGridFormat(s string) GridFormat {
	if GridFormat(s) == FormatWide {
		return FormatWide
	}
	return FormatStandard
}

// Dimensions returns the board width and height for the format.
func (f GridFormat) Dimensions() (width, height int) {
	if f == FormatWide {
		return 20, 40
	}
	return 10, 20
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// AutoFallForPreset returns the auto-fall cadence in ms for a preset,
// or 0 when the preset keeps the configured value.
func AutoFallForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1200
	case DifficultyNormal:
		return 900
	case DifficultyHard:
		return 600
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset leaves the configured timing alone.
func IsFixedPreset(preset DifficultyPreset) bool {
	return AutoFallForPreset(preset) == 0
}
