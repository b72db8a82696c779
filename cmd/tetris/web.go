package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-arcade/internal/platform/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing game sessions as a JSON API.

Each session runs its own clock at --fps ticks per second.

Endpoints:
  POST   /api/sessions                        - Create a session {"format":"wide"}
  GET    /api/sessions/{id}                   - Current snapshot
  POST   /api/sessions/{id}/commands/{name}   - Apply a command (start, left, drop, ...)
  POST   /api/sessions/{id}/format            - Switch board format after game over
  GET    /api/sessions/{id}/events            - Drain buffered events
  DELETE /api/sessions/{id}                   - End a session
  GET    /api/scores?format=&limit=           - Top runs
  GET    /api/health                          - Health check

Examples:
  tetris web
  tetris web --http :9000 --difficulty hard`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg := web.ServerConfig{
		Address:    flagHTTPAddr,
		DBPath:     flagDBPath,
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		TickRate:   flagFPS,
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Press Ctrl+C to stop")
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
