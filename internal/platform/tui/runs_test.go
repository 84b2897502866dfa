package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

func sendRuns(t *testing.T, m RunsModel, msg tea.Msg) RunsModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(RunsModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func TestRunsModelViewsAndGames(t *testing.T) {
	store := openStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, steps := range []int{3, 7, 5} {
		r := storage.RunRecord{GameID: "snake", Steps: steps, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewRunsModel(store, "snake", 80, 24)
	if m.GameID() != "snake" {
		t.Fatalf("GameID() = %q, expected snake", m.GameID())
	}
	if runs := m.Runs(); len(runs) != 3 || runs[0].Steps != 5 {
		t.Fatalf("recent view = %+v, expected newest (5 steps) first", runs)
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if runs := m.Runs(); len(runs) != 3 || runs[0].Steps != 7 {
		t.Errorf("longest view = %+v, expected 7 steps first", runs)
	}
	if !strings.Contains(m.View(), "LONGEST RUNS") {
		t.Error("View() should name the longest view")
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.GameID() != "snake_free" {
		t.Errorf("GameID() = %q after next, expected snake_free", m.GameID())
	}
	if len(m.Runs()) != 0 || !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("snake_free should have no runs")
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.GameID() != "snake" {
		t.Errorf("GameID() = %q after prev, expected snake", m.GameID())
	}
}

func TestRunsModelWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, "unknown", 80, 24)
	if m.GameID() != "snake" {
		t.Errorf("unknown game should fall back to the first entry, got %q", m.GameID())
	}
	if len(m.Runs()) != 0 {
		t.Error("no store means no runs")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}
