package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"shamtool/modules/kit/logx"
	"shamtool/modules/kit/tracex"
)

func TestNewContext_DefaultsToSystemError(t *testing.T) {
	ctx := NewContext("")
	al := FromContext(ctx)
	require.NotNil(t, al)
	assert.Equal(t, BizCode(SystemError), al.BizCode)
	assert.Equal(t, "unknown", al.action)
	traceID, ok := tracex.TraceIDFrom(ctx)
	assert.True(t, ok)
	assert.NotEmpty(t, traceID)
}

func TestWriteAccessLog_UsesBizCode(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := logx.NewZapLogger(zap.New(core))

	ctx := NewContextWithParent(context.Background(), "GET /maps")
	SetBizCode(ctx, BizCode(NotFound))
	SetErrorReason(ctx, "MAP_NOT_FOUND")
	WriteAccessLog(ctx, log)

	require.Equal(t, 1, observed.Len())
	entry := observed.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "GET /maps", fields["action"])
	assert.Equal(t, "failure", fields["result"])
	assert.Equal(t, "MAP_NOT_FOUND", fields["error_reason"])
}

func TestFromContext_WithoutAccessLog(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	SetBizCode(context.Background(), BizCode(OK))
}

func TestNewRequestContext_AdoptsRequestID(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "GET /", "req-9")
	traceID, _ := tracex.TraceIDFrom(ctx)
	assert.Equal(t, "req-9", traceID)
	span, _ := tracex.SpanIDFrom(ctx)
	assert.Equal(t, "api", span)
}
