// Package schedule runs game systems in ordered stages.
//
// Systems within a stage are ordered by explicit Before/After label
// constraints; ties keep insertion order. A system gated by a Timestep runs
// once per elapsed fixed interval instead of once per frame.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Stage identifies a phase of a frame. Stages run in ascending order.
type Stage int

const (
	StageUpdate Stage = iota
	StagePostUpdate
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageUpdate:
		return "update"
	case StagePostUpdate:
		return "post_update"
	default:
		return "unknown"
	}
}

var stages = []Stage{StageUpdate, StagePostUpdate}

// Label names a system for ordering constraints.
type Label string

// System is one unit of per-frame work.
type System struct {
	Label  Label
	Before []Label // systems in the same stage this one must precede
	After  []Label // systems in the same stage this one must follow
	Fixed  *Timestep
	Run    func() error
}

// ErrCycle is returned by Build when ordering constraints form a cycle.
var ErrCycle = errors.New("schedule: ordering cycle")

// Schedule holds systems per stage.
type Schedule struct {
	systems map[Stage][]System
	order   map[Stage][]System
	built   bool
}

// New creates an empty schedule.
func New() *Schedule {
	return &Schedule{
		systems: make(map[Stage][]System),
		order:   make(map[Stage][]System),
	}
}

// Add appends a system to a stage. The schedule must be rebuilt afterwards.
func (s *Schedule) Add(stage Stage, sys System) *Schedule {
	s.systems[stage] = append(s.systems[stage], sys)
	s.built = false
	return s
}

// Build resolves the run order of every stage.
func (s *Schedule) Build() error {
	for _, stage := range stages {
		ordered, err := sortStage(s.systems[stage])
		if err != nil {
			return fmt.Errorf("stage %s: %w", stage, err)
		}
		s.order[stage] = ordered
	}
	s.built = true
	return nil
}

// Order returns the resolved labels of a stage, building if needed.
func (s *Schedule) Order(stage Stage) ([]Label, error) {
	if !s.built {
		if err := s.Build(); err != nil {
			return nil, err
		}
	}
	labels := make([]Label, len(s.order[stage]))
	for i, sys := range s.order[stage] {
		labels[i] = sys.Label
	}
	return labels, nil
}

// Run executes one frame of dt simulated time.
// The first system error stops the frame and is returned.
func (s *Schedule) Run(dt time.Duration) error {
	if !s.built {
		if err := s.Build(); err != nil {
			return err
		}
	}
	for _, stage := range stages {
		if err := s.RunStage(stage, dt); err != nil {
			return err
		}
	}
	return nil
}

// RunStage executes a single stage.
func (s *Schedule) RunStage(stage Stage, dt time.Duration) error {
	if !s.built {
		if err := s.Build(); err != nil {
			return err
		}
	}
	for _, sys := range s.order[stage] {
		times := 1
		if sys.Fixed != nil {
			times = sys.Fixed.Advance(dt)
		}
		for range times {
			if err := sys.Run(); err != nil {
				return fmt.Errorf("%s/%s: %w", stage, sys.Label, err)
			}
		}
	}
	return nil
}

// sortStage is Kahn's algorithm picking the earliest-inserted ready system.
func sortStage(systems []System) ([]System, error) {
	index := make(map[Label]int, len(systems))
	for i, sys := range systems {
		if sys.Run == nil {
			return nil, fmt.Errorf("system %q has no run func", sys.Label)
		}
		if _, dup := index[sys.Label]; dup {
			return nil, fmt.Errorf("duplicate label %q", sys.Label)
		}
		index[sys.Label] = i
	}

	edges := make([][]int, len(systems))
	indegree := make([]int, len(systems))
	link := func(from, to int) {
		edges[from] = append(edges[from], to)
		indegree[to]++
	}
	for i, sys := range systems {
		for _, l := range sys.Before {
			j, ok := index[l]
			if !ok {
				return nil, fmt.Errorf("system %q: unknown label %q", sys.Label, l)
			}
			link(i, j)
		}
		for _, l := range sys.After {
			j, ok := index[l]
			if !ok {
				return nil, fmt.Errorf("system %q: unknown label %q", sys.Label, l)
			}
			link(j, i)
		}
	}

	done := make([]bool, len(systems))
	ordered := make([]System, 0, len(systems))
	for len(ordered) < len(systems) {
		next := -1
		for i := range systems {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, ErrCycle
		}
		done[next] = true
		ordered = append(ordered, systems[next])
		for _, j := range edges[next] {
			indegree[j]--
		}
	}
	return ordered, nil
}
