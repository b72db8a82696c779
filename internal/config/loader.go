package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads the tetris rules. An explicit customPath must exist and
// parse. Otherwise the first readable file among ~/.tetris/configs/tetris.yaml
// and ./configs/tetris.yaml wins, falling back to the embedded defaults.
// Fields missing from a file keep their default values.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTetrisConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTetris(data)
		if err != nil {
			return DefaultTetrisConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths("tetris.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseTetris(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseTetris(defaultTetrisYAML); err == nil {
		return cfg, nil
	}
	return DefaultTetrisConfig(), nil
}

// parseTetris overlays YAML onto the defaults and normalizes the result.
func parseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// searchPaths lists the implicit locations of a config file, user
// directory first.
func searchPaths(filename string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tetris", "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if ms := AutoFallForPreset(preset); ms > 0 {
		cfg.Timing.AutoFallMs = ms
	}
}
