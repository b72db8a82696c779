package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-arcade/internal/core"
	"github.com/vovakirdan/tetris-arcade/internal/platform/tui"
	"github.com/vovakirdan/tetris-arcade/internal/registry"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

var flagWide bool

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: tetris).

Controls:
  Left/Right/A/D  - Move
  Down/S          - Soft drop
  Up/W/X          - Rotate
  Space           - Hard drop
  C               - Cycle rainbow shape
  1 / 2           - Buy rainbow / AI custom block
  3 / 4           - Use rainbow / AI custom block
  G               - Toggle board format (after game over)
  P               - Pause
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Slow auto-fall (1200 ms)
  normal - Default auto-fall (900 ms)
  hard   - Fast auto-fall (600 ms)
  fixed  - Keep the auto-fall from the rules file

Examples:
  tetris play
  tetris play --wide
  tetris play tetris --difficulty hard
  tetris play --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWide, "wide", false, "Play on the wide 20x40 board")
}

// terminalConfig builds a runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil when it cannot.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagWide {
		gameID = "tetris_wide"
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
