package providers

import (
	"context"
	"log/slog"

	"github.com/dinildamsith/game-explorer/internal/logging"
)

// logWithProvider emits a log entry if logger is non-nil and always includes provider and endpoint.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider, endpoint, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args,
		slog.String(logging.FieldProvider, provider),
		slog.String(logging.FieldEndpoint, endpoint),
	)
	logger.Log(ctx, level, msg, args...)
}
