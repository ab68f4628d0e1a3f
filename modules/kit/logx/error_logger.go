package logx

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BizLog describes a business rejection.
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog describes a technical failure.
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// Access is one served request.
type Access struct {
	Action  string
	BizCode int
	Status  int
	Latency time.Duration
	// Reason is the error reason of a failed request; ignored on success.
	Reason   string
	ClientIP string
}

// AccessLevel maps an envelope code to a level: 0 info, 1..499 warn, 500+ error.
func AccessLevel(bizCode int) zapcore.Level {
	switch {
	case bizCode == 0:
		return zapcore.InfoLevel
	case bizCode >= 500:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ReportAccess writes the access line of a request at AccessLevel(a.BizCode).
func ReportAccess(ctx context.Context, l Logger, a Access) {
	if l == nil {
		return
	}
	if a.Action == "" {
		a.Action = "unknown"
	}
	fields := []zap.Field{
		zap.String(KeyLogType, "access"),
		zap.String(KeyAction, a.Action),
		zap.Int(KeyBizCode, a.BizCode),
		zap.Duration(KeyLatency, a.Latency),
	}
	if a.Status != 0 {
		fields = append(fields, zap.Int(KeyStatus, a.Status))
	}
	if a.ClientIP != "" {
		fields = append(fields, zap.String(KeyClientIP, a.ClientIP))
	}
	if a.BizCode == 0 {
		fields = append(fields, zap.String(KeyResult, "success"))
	} else {
		fields = append(fields, zap.String(KeyResult, "failure"))
		if a.Reason != "" {
			fields = append(fields, zap.String(KeyErrorReason, a.Reason))
		}
	}

	lc := l.WithContext(ctx)
	switch AccessLevel(a.BizCode) {
	case zapcore.InfoLevel:
		lc.Info("access", fields...)
	case zapcore.ErrorLevel:
		lc.Error("access", fields...)
	default:
		lc.Warn("access", fields...)
	}
}

// ReportBiz logs a business rejection at INFO with err_type=biz and no stack.
func ReportBiz(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	if biz.Action == "" {
		biz.Action = "biz_reject"
	}
	base := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String(KeyAction, biz.Action),
	}
	if biz.Reason != "" {
		base = append(base, zap.String("reason", biz.Reason))
	}
	if biz.Message != "" {
		base = append(base, zap.String("biz_message", biz.Message))
	}
	base = append(base, fields...)
	l.WithContext(ctx).Info(summary(biz.Action, "reason", biz.Reason, "msg", biz.Message), base...)
}

// ReportSysError logs a technical failure at ERROR with err_type=sys, the
// error's code, data and cause chain, and the origin stack when there is one.
func ReportSysError(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	if sys.Action == "" {
		sys.Action = "sys_error"
	}

	meta := BuildErrorLog(sys.Err)
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String(KeyAction, sys.Action),
	}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin))
	}
	if meta.Stack != "" {
		base = append(base, zap.String("stack_origin", meta.Stack))
	}
	base = append(base, fields...)

	msg := summary(sys.Action, "reason", meta.Reason, "error", meta.Error)
	if meta.Reason == "" {
		msg = summary(sys.Action, "error", meta.Error, "msg", meta.Msg)
	}
	l.WithContext(ctx).Error(msg, base...)
}

// summary renders "action, k1:v1, k2:v2" skipping empty values.
func summary(action string, kv ...string) string {
	var b strings.Builder
	b.WriteString(action)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		b.WriteString(", ")
		b.WriteString(kv[i])
		b.WriteString(":")
		b.WriteString(kv[i+1])
	}
	return b.String()
}
