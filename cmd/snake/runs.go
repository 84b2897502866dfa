package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "Show recorded runs for a game",
	Long: `Display the most recent and the longest runs for a game (default: snake),
followed by totals.

Examples:
  snake runs
  snake runs snake_free --limit 20
  snake runs --browse
  snake runs --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Runs to show per list")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Open the interactive run browser")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs for the game")
}

func runRuns(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'snake list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared runs for %s.\n", gameID)
		return nil

	case flagRunsBrowse:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.BrowseRuns(store, gameID, width, height)
	}

	return printRuns(cmd.OutOrStdout(), store, gameID, flagRunsLimit)
}

func printRuns(out io.Writer, store *storage.Store, gameID string, limit int) error {
	recent, err := store.RecentRuns(gameID, limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Fprintf(out, "No runs recorded for %s yet.\n\n", gameID)
		fmt.Fprintf(out, "Play 'snake play %s' to record one.\n", gameID)
		return nil
	}

	longest, err := store.LongestRuns(gameID, limit)
	if err != nil {
		return err
	}
	stats, err := store.GameStats(gameID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Recent runs - %s\n\n", gameID)
	writeRunTable(out, recent)

	fmt.Fprintf(out, "\nLongest runs - %s\n\n", gameID)
	writeRunTable(out, longest)

	fmt.Fprintf(out, "\nRuns: %d  Best: %d steps  Average: %.1f steps  Turns: %d\n",
		stats.RunsCount, stats.MaxSteps, stats.AvgSteps, stats.TotalTurns)
	return nil
}

func writeRunTable(out io.Writer, runs []storage.RunRecord) {
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-10s  %-8s  %s\n", "#", "Steps", "Turns", "End", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-10s  %-8s  %s\n", "-", "-----", "-----", "---", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6d  %-10s  %-8s  %s\n",
			i+1, r.Steps, r.Turns,
			fmt.Sprintf("(%d,%d)", r.FinalX, r.FinalY),
			r.Duration.Round(100*time.Millisecond),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
}
