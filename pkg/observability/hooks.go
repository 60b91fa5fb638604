package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Combine merges hook sets. Callbacks run in the order the sets were given.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnStep = chainStep(out.OnStep, h.OnStep)
		out.OnHalt = chainHalt(out.OnHalt, h.OnHalt)
		out.OnFault = chainFault(out.OnFault, h.OnFault)
	}
	return out
}

func chainStep(a, b func(context.Context, *domain.StepEvent)) func(context.Context, *domain.StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainHalt(a, b func(context.Context, *domain.HaltEvent)) func(context.Context, *domain.HaltEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.HaltEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainFault(a, b func(context.Context, *domain.FaultEvent)) func(context.Context, *domain.FaultEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.FaultEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LoggingHooks logs halts and faults at Info and every step at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "machine_step",
				"machine", e.Machine,
				"step", e.Step,
				"from", e.From,
				"read", e.Read,
				"to", e.Rule.Next,
				"head", e.Head,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.InfoContext(ctx, "machine_halt",
				"machine", e.Machine,
				"state", e.State,
				"steps", e.Steps,
			)
		},
		OnFault: func(ctx context.Context, e *domain.FaultEvent) {
			logger.WarnContext(ctx, "machine_fault",
				"machine", e.Machine,
				"state", e.State,
				"steps", e.Steps,
				"err", e.Err,
			)
		},
	}
}
