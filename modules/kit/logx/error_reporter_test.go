package logx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"shamtool/modules/kit/errx"
	"shamtool/modules/kit/tracex"
)

func TestBuildErrorLog_ExtractsMeaningAndStack(t *testing.T) {
	cause := errors.New("db down")
	e := errx.NewSys("SYS_INTERNAL", "internal server error").
		WithData("method", "Save").
		WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code == "" || meta.Msg == "" {
		t.Fatalf("expected error, code and msg, got=%+v", meta)
	}
	if meta.Data == nil || meta.Data["method"] != "Save" {
		t.Fatalf("expected data method=Save, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("expected a cause chain")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("expected origin and stack, origin=%q stack=%q", meta.Origin, meta.Stack)
	}
	if !strings.HasPrefix(meta.Stack, meta.Origin) {
		t.Fatalf("origin must be the first frame, origin=%q", meta.Origin)
	}
}

func TestBuildErrorLog_FindsStackBelowWrappers(t *testing.T) {
	inner := errx.NewSys("SERVICE_UNAVAILABLE", "").WithCause(errors.New("dial tcp"))
	wrapped := fmt.Errorf("load map: %w", inner)

	meta := BuildErrorLog(wrapped)
	if meta.Code != "SERVICE_UNAVAILABLE" {
		t.Fatalf("code=%q", meta.Code)
	}
	if meta.Stack == "" {
		t.Fatalf("expected the inner stack")
	}
	if len(meta.CauseChain) != 2 {
		t.Fatalf("cause chain=%v", meta.CauseChain)
	}
}

func TestBuildErrorLog_PlainError(t *testing.T) {
	meta := BuildErrorLog(errors.New("boom"))
	if meta.Error != "boom" || meta.Code != "" || meta.Stack != "" {
		t.Fatalf("unexpected %+v", meta)
	}
	if empty := BuildErrorLog(nil); empty.Error != "" || empty.CauseChain != nil {
		t.Fatalf("nil error must give an empty log")
	}
}

func TestAccessLevel(t *testing.T) {
	cases := map[int]zapcore.Level{
		0:   zapcore.InfoLevel,
		400: zapcore.WarnLevel,
		404: zapcore.WarnLevel,
		500: zapcore.ErrorLevel,
		503: zapcore.ErrorLevel,
	}
	for code, want := range cases {
		if got := AccessLevel(code); got != want {
			t.Fatalf("AccessLevel(%d)=%s want %s", code, got, want)
		}
	}
}

func TestReportAccess_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := tracex.Start(context.Background(), "api", "req-1")

	ReportAccess(ctx, l, Access{Action: "GET /maps", BizCode: 0, Status: 200, Latency: time.Millisecond, ClientIP: "10.0.0.1"})
	ReportAccess(ctx, l, Access{Action: "GET /maps/:code", BizCode: 404, Status: 404, Reason: "MAP_NOT_FOUND"})
	ReportAccess(ctx, l, Access{BizCode: 500})

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got=%d", len(entries))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("entry %d: level=%s want=%s", i, e.Level, want[i])
		}
	}

	ok := entries[0].ContextMap()
	if ok[KeyResult] != "success" || ok[KeyTraceID] != "req-1" || ok[KeyClientIP] != "10.0.0.1" {
		t.Fatalf("success fields=%v", ok)
	}
	if _, has := ok[KeyErrorReason]; has {
		t.Fatalf("success line must not carry a reason")
	}
	miss := entries[1].ContextMap()
	if miss[KeyResult] != "failure" || miss[KeyErrorReason] != "MAP_NOT_FOUND" {
		t.Fatalf("failure fields=%v", miss)
	}
	if entries[2].ContextMap()[KeyAction] != "unknown" {
		t.Fatalf("empty action must default")
	}
}

func TestReportBiz_Message(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ReportBiz(context.Background(), NewZapLogger(zap.New(core)), NewBizLog("map get", "MAP_NOT_FOUND", "Map not found."))

	if logs.Len() != 1 {
		t.Fatalf("expected one entry")
	}
	e := logs.All()[0]
	if e.Level != zapcore.InfoLevel || e.Message != "map get, reason:MAP_NOT_FOUND, msg:Map not found." {
		t.Fatalf("unexpected entry level=%s msg=%q", e.Level, e.Message)
	}
}

func TestReportSysError_SkipsNil(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ReportSysError(context.Background(), NewZapLogger(zap.New(core)), NewSysLog("save", nil))
	if logs.Len() != 0 {
		t.Fatalf("nil error must not be logged")
	}
}

func TestSummary_SkipsEmptyValues(t *testing.T) {
	if got := summary("save", "reason", "", "error", "boom"); got != "save, error:boom" {
		t.Fatalf("summary=%q", got)
	}
	if got := summary("save"); got != "save" {
		t.Fatalf("summary=%q", got)
	}
}
