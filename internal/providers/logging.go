package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

// logUpstream writes one upstream call outcome tagged with the provider.
// Successes and cancellations are debug noise; failures are warnings and
// carry the upstream status when one was received.
func logUpstream(ctx context.Context, logger *slog.Logger, provider, kind string, err error, elapsed time.Duration, attrs ...any) {
	if logger == nil {
		return
	}
	attrs = append(attrs,
		slog.String(logging.FieldProvider, provider),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)

	level, outcome := slog.LevelDebug, "fetched"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		outcome = "canceled"
	default:
		level, outcome = slog.LevelWarn, "failed"
		if upstream, ok := AsUpstreamError(err); ok && upstream.StatusCode > 0 {
			attrs = append(attrs, slog.Int(logging.FieldStatusCode, upstream.StatusCode))
		}
		attrs = append(attrs, slog.Any("error", err))
	}
	logger.Log(ctx, level, "upstream "+kind+" "+outcome, attrs...)
}
