package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	flagKeys     string
	flagFrames   int
	flagFormat   string
	flagNoWindow bool
)

var traceCmd = &cobra.Command{
	Use:   "trace [game]",
	Short: "Replay a key script without a terminal",
	Long: `Run a game headless against the configured window and print the head
after every frame.

The key script is a comma separated list with one entry per frame. An entry
holds zero or more keys joined with '+': w, a, s, d, up, down, left, right,
p (pause) and r (respawn). Frames beyond the script get no keys.

Examples:
  snake trace --keys "d,d,,w" --fps 4
  snake trace snake_free --keys "a+w,a"
  snake trace --frames 240 --format json
  snake trace --no-window        # fails: there is no primary window`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrace,
}

func init() {
	addConfigFlags(traceCmd)
	traceCmd.Flags().StringVar(&flagKeys, "keys", "", "Key script, one comma separated entry per frame")
	traceCmd.Flags().IntVar(&flagFrames, "frames", 0, "Frames to run (default: length of the key script)")
	traceCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json, logfmt")
	traceCmd.Flags().BoolVar(&flagNoWindow, "no-window", false, "Run without a primary window")
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	script, err := parseKeyScript(flagKeys)
	if err != nil {
		return err
	}
	frames := flagFrames
	if frames <= 0 {
		frames = max(len(script), 1)
	}

	out, err := newTraceLogger(cmd.OutOrStdout(), flagFormat)
	if err != nil {
		return err
	}

	var window *core.Window
	if !flagNoWindow {
		window = &core.Window{Title: cfg.Window.Title, Width: cfg.Window.Width, Height: cfg.Window.Height}
	}
	return trace(out, gameArg(args), cfg, window, flagFPS, script, frames)
}

// trace steps a game frame by frame with a pinned window and logs every frame.
func trace(out *log.Logger, gameID string, cfg config.SnakeConfig, window *core.Window, tickRate int, script []core.InputFrame, frames int) error {
	game, err := snake.NewVariant(gameID, cfg)
	if err != nil {
		return err
	}
	// No screen: the pinned window is the only window there is.
	game.Reset(core.RuntimeConfig{TickRate: tickRate})
	game.SetWindow(window)

	for i := range frames {
		in := core.NewInputFrame()
		if i < len(script) {
			in = script[i]
		}

		res := game.Step(in)
		if res.Err != nil {
			return fmt.Errorf("frame %d: %w", i+1, res.Err)
		}

		snap := game.Snapshot()
		out.Info("frame",
			"n", snap.Frame,
			"x", snap.HeadX,
			"y", snap.HeadY,
			"dir", snap.Dir.String(),
			"px", snap.PixelX,
			"py", snap.PixelY,
			"sprite", snap.SpriteSize,
			"steps", snap.Steps,
			"state", string(snap.State),
		)
	}
	return nil
}

func newTraceLogger(w io.Writer, format string) (*log.Logger, error) {
	opts := log.Options{}
	switch format {
	case "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown --format %q (want text, json or logfmt)", format)
	}
	return log.NewWithOptions(w, opts), nil
}

var scriptKeys = map[string]core.Action{
	"w":       core.ActionUp,
	"up":      core.ActionUp,
	"s":       core.ActionDown,
	"down":    core.ActionDown,
	"a":       core.ActionLeft,
	"left":    core.ActionLeft,
	"d":       core.ActionRight,
	"right":   core.ActionRight,
	"p":       core.ActionPause,
	"pause":   core.ActionPause,
	"r":       core.ActionRestart,
	"restart": core.ActionRestart,
}

// parseKeyScript turns "w,a+d,,s" into one input frame per entry.
func parseKeyScript(script string) ([]core.InputFrame, error) {
	if strings.TrimSpace(script) == "" {
		return nil, nil
	}

	entries := strings.Split(script, ",")
	frames := make([]core.InputFrame, len(entries))
	for i, entry := range entries {
		frames[i] = core.NewInputFrame()
		for _, k := range strings.Split(entry, "+") {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			action, ok := scriptKeys[k]
			if !ok {
				return nil, fmt.Errorf("key script entry %d: unknown key %q", i+1, k)
			}
			frames[i].Set(action)
		}
	}
	return frames, nil
}
