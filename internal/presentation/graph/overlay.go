package graph

import (
	"context"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Recorder collects the states a run passes through so they can be drawn as an overlay.
type Recorder struct {
	mu      sync.Mutex
	visited []domain.State
	current domain.State
	ran     bool
}

// Hooks returns lifecycle hooks feeding the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.visited = append(r.visited, e.From)
			r.current = e.Rule.Next
			r.ran = true
		},
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			r.stop(e.State)
		},
		OnFault: func(_ context.Context, e *domain.FaultEvent) {
			r.stop(e.State)
		},
	}
}

func (r *Recorder) stop(state domain.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = state
	r.ran = true
}

// Overlay returns the recorded run, or nil if the machine never started.
// The state the run stopped in, halting or faulted, is the current state.
func (r *Recorder) Overlay() *GraphOverlay {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ran {
		return nil
	}
	return &GraphOverlay{
		VisitedStates: append([]domain.State(nil), r.visited...),
		CurrentState:  r.current,
	}
}
