// Package slog wraps docchat services with structured logging via log/slog.
package slog

import (
	"context"
	"log/slog"
)

// level picks the record level for a finished call.
func level(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// logCall emits one record for a finished call.
func logCall(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "err", err)
	}
	logger.Log(ctx, level(err), msg, args...)
}
