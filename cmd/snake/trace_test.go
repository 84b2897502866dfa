package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestParseKeyScript(t *testing.T) {
	frames, err := parseKeyScript("w, a+D ,,restart")
	if err != nil {
		t.Fatalf("parseKeyScript() failed: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}

	tests := []struct {
		frame int
		want  []core.Action
	}{
		{0, []core.Action{core.ActionUp}},
		{1, []core.Action{core.ActionLeft, core.ActionRight}},
		{2, nil},
		{3, []core.Action{core.ActionRestart}},
	}
	for _, tt := range tests {
		got := frames[tt.frame]
		if len(got.Actions) != len(tt.want) {
			t.Errorf("frame %d has %d actions, expected %d", tt.frame, len(got.Actions), len(tt.want))
		}
		for _, a := range tt.want {
			if !got.Has(a) {
				t.Errorf("frame %d missing %v", tt.frame, a)
			}
		}
	}

	if frames, err := parseKeyScript("  "); err != nil || frames != nil {
		t.Errorf("empty script = %v, %v; expected no frames", frames, err)
	}
	if _, err := parseKeyScript("w,jump"); err == nil {
		t.Error("unknown keys should fail")
	}
}

func TestTracePrintsEveryFrame(t *testing.T) {
	script, err := parseKeyScript("d,d,,w")
	if err != nil {
		t.Fatalf("parseKeyScript() failed: %v", err)
	}

	var buf bytes.Buffer
	out, err := newTraceLogger(&buf, "logfmt")
	if err != nil {
		t.Fatalf("newTraceLogger() failed: %v", err)
	}

	cfg := config.DefaultSnakeConfig()
	window := &core.Window{Title: "Snake", Width: 500, Height: 500}
	// 4 fps: one movement step per frame.
	if err := trace(out, "snake", cfg, window, 4, script, len(script)); err != nil {
		t.Fatalf("trace() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	want := []string{
		"n=1 x=4 y=3 dir=right",
		"n=2 x=5 y=3 dir=right",
		"n=3 x=6 y=3 dir=right",
		"n=4 x=6 y=4 dir=up",
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Errorf("line %d = %q, expected it to contain %q", i+1, lines[i], w)
		}
	}
	if !strings.Contains(lines[3], "px=75") || !strings.Contains(lines[3], "py=-25") {
		t.Errorf("line 4 = %q, expected translation (75,-25)", lines[3])
	}
}

func TestTraceWithoutWindowFails(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTraceLogger(&buf, "text")

	err := trace(out, "snake", config.DefaultSnakeConfig(), nil, 60, nil, 3)
	if !errors.Is(err, core.ErrNoPrimaryWindow) {
		t.Fatalf("trace() error = %v, expected ErrNoPrimaryWindow", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no frame should be printed, got %q", buf.String())
	}
}

func TestTraceRejectsUnknownInputs(t *testing.T) {
	var buf bytes.Buffer
	if _, err := newTraceLogger(&buf, "xml"); err == nil {
		t.Error("unknown format should fail")
	}

	out, _ := newTraceLogger(&buf, "text")
	if err := trace(out, "tetris", config.DefaultSnakeConfig(), nil, 60, nil, 1); err == nil {
		t.Error("unknown game should fail")
	}
}

func TestConfigCommandAppliesSpeed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config", "--speed", "fast"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagSpeed = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "step_seconds: 0.15") {
		t.Errorf("config output missing fast step:\n%s", buf.String())
	}
}
