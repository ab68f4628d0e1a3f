package transport

import (
	"context"
	"time"

	"shamtool/modules/kit/logx"
	"shamtool/modules/kit/tracex"
)

// AccessLog is the per-request log context.
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	Status      int
	ClientIP    string
	startTime   time.Time
	action      string
}

type accessLogKey struct{}

// NewContext creates a request context rooted at context.Background.
func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent creates a request context that keeps the parent's
// cancellation and deadline.
func NewContextWithParent(parent context.Context, action string) context.Context {
	return NewRequestContext(parent, action, "")
}

// NewRequestContext is NewContextWithParent adopting requestID as the trace id
// when the caller sent a usable one.
func NewRequestContext(parent context.Context, action, requestID string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx = tracex.Start(ctx, "api", requestID)

	al := &AccessLog{
		BizCode:   BizCode(SystemError),
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

// SetErrorReason records why the request failed.
func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

// WriteAccessLog emits the access line; middleware calls it once the handler returns.
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	logx.ReportAccess(ctx, log, logx.Access{
		Action:   al.action,
		BizCode:  int(al.BizCode),
		Status:   al.Status,
		Latency:  time.Since(al.startTime),
		Reason:   al.ErrorReason,
		ClientIP: al.ClientIP,
	})
}
