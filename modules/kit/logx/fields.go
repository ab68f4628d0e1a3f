package logx

import (
	"context"

	"go.uber.org/zap"

	"shamtool/modules/kit/tracex"
)

// Field keys shared by every shamtool log line.
const (
	KeyTraceID     = "trace_id"
	KeySpanID      = "span_id"
	KeyLogType     = "log_type"
	KeyAction      = "action"
	KeyBizCode     = "biz_code"
	KeyResult      = "result"
	KeyLatency     = "latency"
	KeyErrorReason = "error_reason"
	KeyStatus      = "status"
	KeyClientIP    = "client_ip"
)

// TraceFields returns the trace and span ids held by ctx as zap fields.
func TraceFields(ctx context.Context) []zap.Field {
	var out []zap.Field
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		out = append(out, zap.String(KeyTraceID, tid))
	}
	if sid, ok := tracex.SpanIDFrom(ctx); ok {
		out = append(out, zap.String(KeySpanID, sid))
	}
	return out
}
