package kinesisdemo

import (
	"context"
	"log/slog"
)

type clientContextKey struct{}
type loggerContextKey struct{}

// LoggerWithContext returns a copy of ctx carrying logger. Poll hands record
// processors a context built this way, with stream, run and shard attributes set.
func LoggerWithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext returns the logger stored in ctx, falling back to slog.Default.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

func ClientWithContext(ctx context.Context, client *Client) context.Context {
	return context.WithValue(ctx, clientContextKey{}, client)
}

// ClientFromContext retrieves the Client polling the current shard, if present.
func ClientFromContext(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey{}).(*Client)
	if !ok {
		return nil
	}
	return c
}
