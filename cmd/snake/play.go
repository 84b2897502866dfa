package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: snake).

Controls:
  W/A/S/D, arrows - Steer
  P/Esc           - Pause
  R               - Respawn
  Ctrl+S          - Screenshot to ~/.snake/screenshots
  Q/Ctrl+C        - Quit

Speed presets:
  slow   - one step every 0.4s
  normal - one step every 0.25s
  fast   - one step every 0.15s

Examples:
  snake play
  snake play snake_free
  snake play --speed slow
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addConfigFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'snake list' to see available games", gameID)
	}

	if _, err := loadConfig(); err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be recorded", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
	if err := tui.Run(game, store, logger, cfg); err != nil {
		return fmt.Errorf("%s: %w", gameID, err)
	}
	return nil
}
