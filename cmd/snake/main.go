// snake plays a grid snake head in the terminal.
//
// Usage:
//
//	snake list              - List available games
//	snake play [game]       - Play a game (default: snake)
//	snake trace [game]      - Run a key script headless and print each frame
//	snake serve             - Start SSH server for remote play
//	snake runs [game]       - Show recorded runs
//	snake config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.snake/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const defaultGame = string(snake.VariantSteered)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string

	// Shared by play, trace, serve and config
	flagConfig string
	flagSpeed  string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - steer a snake head around a grid in your terminal",
	Long: `Snake moves a head across a square grid. The heading follows WASD or
the arrow keys and the head advances one cell per movement step.

Available commands:
  list     - Show all available games
  play     - Play locally
  trace    - Replay a key script without a terminal
  serve    - Start SSH server for remote play
  runs     - View recorded runs
  config   - Print the effective configuration

Examples:
  snake play
  snake play snake_free
  snake play --speed fast
  snake trace --keys "d,d,,w"
  snake serve --ssh :2222
  snake runs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

func setupLogger(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}

// addConfigFlags registers --config and --speed on a command.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	cmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
}

// loadConfig resolves the effective configuration and installs it for
// registry-created games.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
		return config.SnakeConfig{}, err
	}
	snake.SetConfig(cfg)
	return cfg, nil
}

// gameArg returns the game named on the command line or the default.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}
