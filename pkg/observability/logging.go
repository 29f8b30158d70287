package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stencil/pkg/domain"
)

// LoggingHooks returns hooks that write one structured record per lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(msg string, level slog.Level) func(context.Context, *domain.OperatorEvent) {
		return func(ctx context.Context, e *domain.OperatorEvent) {
			logger.Log(ctx, level, msg,
				"tool", e.Tool,
				"state_index", e.StateIndex,
				"state", e.StateName,
				"success", e.Success,
			)
		}
	}
	return domain.LifecycleHooks{
		OnInvoke:      log("operator_invoke", slog.LevelInfo),
		OnStateEnter:  log("state_enter", slog.LevelDebug),
		OnStateLeave:  log("state_leave", slog.LevelDebug),
		OnNumericEdit: log("numeric_edit", slog.LevelDebug),
		OnOperation:   log("operation", slog.LevelDebug),
		OnFinish:      log("operator_finish", slog.LevelInfo),
		OnCancel:      log("operator_cancel", slog.LevelInfo),
	}
}
