package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func record(log *[]Label, l Label) func() error {
	return func() error {
		*log = append(*log, l)
		return nil
	}
}

func TestScheduleOrdering(t *testing.T) {
	var log []Label
	s := New()
	s.Add(StagePostUpdate, System{Label: "translation", Run: record(&log, "translation")})
	s.Add(StageUpdate, System{Label: "movement", Run: record(&log, "movement")})
	s.Add(StageUpdate, System{Label: "input", Before: []Label{"movement"}, Run: record(&log, "input")})
	s.Add(StageUpdate, System{Label: "audit", After: []Label{"movement"}, Run: record(&log, "audit")})

	if err := s.Run(time.Millisecond); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	expected := []Label{"input", "movement", "audit", "translation"}
	if !reflect.DeepEqual(log, expected) {
		t.Errorf("run order = %v, expected %v", log, expected)
	}
}

func TestScheduleKeepsInsertionOrder(t *testing.T) {
	s := New()
	for _, l := range []Label{"c", "a", "b"} {
		s.Add(StageUpdate, System{Label: l, Run: func() error { return nil }})
	}

	order, err := s.Order(StageUpdate)
	if err != nil {
		t.Fatalf("Order() failed: %v", err)
	}
	if !reflect.DeepEqual(order, []Label{"c", "a", "b"}) {
		t.Errorf("unconstrained order = %v, expected insertion order", order)
	}
}

func TestScheduleBuildErrors(t *testing.T) {
	noop := func() error { return nil }

	tests := []struct {
		name    string
		systems []System
		isCycle bool
	}{
		{
			name: "cycle",
			systems: []System{
				{Label: "a", Before: []Label{"b"}, Run: noop},
				{Label: "b", Before: []Label{"a"}, Run: noop},
			},
			isCycle: true,
		},
		{
			name:    "unknown label",
			systems: []System{{Label: "a", After: []Label{"ghost"}, Run: noop}},
		},
		{
			name:    "duplicate label",
			systems: []System{{Label: "a", Run: noop}, {Label: "a", Run: noop}},
		},
		{
			name:    "missing run func",
			systems: []System{{Label: "a"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			for _, sys := range tc.systems {
				s.Add(StageUpdate, sys)
			}
			err := s.Build()
			if err == nil {
				t.Fatal("Build() should fail")
			}
			if tc.isCycle && !errors.Is(err, ErrCycle) {
				t.Errorf("expected ErrCycle, got %v", err)
			}
		})
	}
}

func TestScheduleStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	s := New()
	s.Add(StageUpdate, System{Label: "fail", Run: func() error { return boom }})
	s.Add(StagePostUpdate, System{Label: "later", Run: func() error { ran = true; return nil }})

	err := s.Run(time.Millisecond)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if ran {
		t.Error("later stages should not run after an error")
	}
}

func TestScheduleFixedSystem(t *testing.T) {
	count := 0
	s := New()
	s.Add(StageUpdate, System{
		Label: "movement",
		Fixed: NewTimestep(250*time.Millisecond, 0),
		Run:   func() error { count++; return nil },
	})

	// 8 frames of 125ms = 1s of simulated time
	for range 8 {
		if err := s.Run(125 * time.Millisecond); err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
	}
	if count != 4 {
		t.Errorf("fixed system ran %d times, expected 4", count)
	}
}

func TestTimestepAdvance(t *testing.T) {
	ts := NewTimestep(250*time.Millisecond, 3)

	if n := ts.Advance(100 * time.Millisecond); n != 0 {
		t.Errorf("Advance(100ms) = %d, expected 0", n)
	}
	if n := ts.Advance(200 * time.Millisecond); n != 1 {
		t.Errorf("Advance(200ms) = %d, expected 1", n)
	}
	if ts.Overstep() != 50*time.Millisecond {
		t.Errorf("Overstep() = %v, expected 50ms", ts.Overstep())
	}

	// A long stall is capped and the backlog dropped
	if n := ts.Advance(10 * time.Second); n != 3 {
		t.Errorf("Advance(10s) = %d, expected cap of 3", n)
	}
	if ts.Overstep() != 0 {
		t.Errorf("backlog should be dropped, Overstep() = %v", ts.Overstep())
	}
	if ts.Steps() != 4 {
		t.Errorf("Steps() = %d, expected 4", ts.Steps())
	}

	ts.Reset()
	if ts.Steps() != 0 || ts.Overstep() != 0 {
		t.Error("Reset should clear state")
	}
	if n := ts.Advance(-time.Second); n != 0 {
		t.Errorf("negative dt should not step, got %d", n)
	}
}
