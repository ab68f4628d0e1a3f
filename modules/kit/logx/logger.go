package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger is what handlers and services log through. WithContext returns a
// logger carrying the request's trace and span ids.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
