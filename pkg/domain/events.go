package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep  EventType = "step"
	EventHalt  EventType = "halt"
	EventFault EventType = "fault"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// StepEvent is emitted after a rule fired.
type StepEvent struct {
	EventBase
	Step int    `json:"step"`
	From State  `json:"from"`
	Read Symbol `json:"read"`
	Rule Rule   `json:"rule"`
	Head int    `json:"head"`
}

// HaltEvent is emitted once when a run reaches a halting state.
type HaltEvent struct {
	EventBase
	State State `json:"state"`
	Steps int   `json:"steps"`
	Head  int   `json:"head"`
}

// FaultEvent is emitted when a step or run fails.
type FaultEvent struct {
	EventBase
	State State `json:"state"`
	Steps int   `json:"steps"`
	Err   error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStep  func(context.Context, *StepEvent)
	OnHalt  func(context.Context, *HaltEvent)
	OnFault func(context.Context, *FaultEvent)
}
