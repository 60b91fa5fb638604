package runtime

import (
	"context"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Machine: e.name}
}

func (e *Engine) emitStep(ctx context.Context, from domain.State, read domain.Symbol, rule domain.Rule) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStep),
		Step:      e.steps,
		From:      from,
		Read:      read,
		Rule:      rule,
		Head:      e.head,
	})
}

func (e *Engine) emitHalt(ctx context.Context) {
	if e.hooks.OnHalt == nil {
		return
	}
	e.hooks.OnHalt(ctx, &domain.HaltEvent{
		EventBase: e.base(domain.EventHalt),
		State:     e.state,
		Steps:     e.steps,
		Head:      e.head,
	})
}

func (e *Engine) emitFault(ctx context.Context, err error) {
	if e.hooks.OnFault == nil {
		return
	}
	e.hooks.OnFault(ctx, &domain.FaultEvent{
		EventBase: e.base(domain.EventFault),
		State:     e.state,
		Steps:     e.steps,
		Err:       err,
	})
}
