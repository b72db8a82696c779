package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [format]",
	Short: "Show high scores",
	Long: `Display the top runs, optionally for one board format.

Examples:
  tetris scores
  tetris scores wide
  tetris scores standard --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	format := ""
	title := "all boards"
	if len(args) > 0 {
		format = string(config.ParseGridFormat(args[0]))
		title = format
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(format, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %-5s  %-8s  %s\n", "Rank", "Score", "Level", "Lines", "Combo", "Format", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %-5s  %-8s  %s\n", "----", "-----", "-----", "-----", "-----", "------", "----")

	for i, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-5d  %-5d  %-8s  %s\n",
			i+1, run.Score, run.Level, run.Lines, run.MaxCombo, run.Format, dateStr)
	}
}
