package distance

import (
	"context"
	"log/slog"
)

func logCacheRead(ctx context.Context, err error) {
	slog.WarnContext(ctx, "distance cache read failed", "err", err)
}

func logCacheWrite(ctx context.Context, err error) {
	slog.WarnContext(ctx, "distance cache write failed", "err", err)
}
