package domain

import (
	"context"
	"time"
)

// OperatorEvent describes a lifecycle moment of an operator run.
type OperatorEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Tool       string    `json:"tool"`
	StateIndex int       `json:"state_index"`
	StateName  string    `json:"state_name,omitempty"`
	Success    bool      `json:"success,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnInvoke      func(context.Context, *OperatorEvent)
	OnStateEnter  func(context.Context, *OperatorEvent)
	OnStateLeave  func(context.Context, *OperatorEvent)
	OnNumericEdit func(context.Context, *OperatorEvent)
	OnOperation   func(context.Context, *OperatorEvent) // Success carries Main's result
	OnFinish      func(context.Context, *OperatorEvent)
	OnCancel      func(context.Context, *OperatorEvent)
}

// Merge returns hooks that call h and then o for every callback.
func (h LifecycleHooks) Merge(o LifecycleHooks) LifecycleHooks {
	join := func(a, b func(context.Context, *OperatorEvent)) func(context.Context, *OperatorEvent) {
		switch {
		case a == nil:
			return b
		case b == nil:
			return a
		}
		return func(ctx context.Context, e *OperatorEvent) {
			a(ctx, e)
			b(ctx, e)
		}
	}
	return LifecycleHooks{
		OnInvoke:      join(h.OnInvoke, o.OnInvoke),
		OnStateEnter:  join(h.OnStateEnter, o.OnStateEnter),
		OnStateLeave:  join(h.OnStateLeave, o.OnStateLeave),
		OnNumericEdit: join(h.OnNumericEdit, o.OnNumericEdit),
		OnOperation:   join(h.OnOperation, o.OnOperation),
		OnFinish:      join(h.OnFinish, o.OnFinish),
		OnCancel:      join(h.OnCancel, o.OnCancel),
	}
}
