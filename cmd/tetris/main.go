// tetris is a terminal Tetris with special blocks, rarity tiers and a
// power-up shop, playable locally, over SSH or through an HTTP API.
//
// Usage:
//
//	tetris list              - List available boards
//	tetris play [board]      - Play a board (default: tetris)
//	tetris menu              - Pick a board interactively
//	tetris serve             - Start SSH server for remote play
//	tetris web               - Start HTTP API server
//	tetris scores [format]   - Show high scores
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.tetris/scores.db)
//	--config <path>        - Load rules from a YAML file
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris with special blocks, played in your terminal",
	Long: `A terminal Tetris with fire, acid, nuclear and color-cleaner blocks,
rarity tiers, a power-up shop and a wide 20x40 board.

Available commands:
  list     - Show the available boards
  play     - Play a board directly
  menu     - Interactive board picker
  serve    - Start SSH server for remote play
  web      - Start HTTP API server
  scores   - View high scores

Examples:
  tetris play
  tetris play tetris_wide --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris web --http :8080
  tetris scores wide`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Set rules for games before creation
		tetris.SetConfigPath(flagConfig)
		tetris.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}
