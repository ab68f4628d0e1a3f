package tracex

import (
	"context"
	"strings"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("TraceIDFrom round-trip failed, got=%q ok=%v", got, ok)
	}
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("span id must be absent")
	}
}

func TestWithSpanID_KeepsTrace(t *testing.T) {
	ctx := WithSpanID(WithTraceID(context.Background(), "t-1"), "mapdb")
	ctx = WithSpanID(ctx, "store")

	if got, _ := TraceIDFrom(ctx); got != "t-1" {
		t.Fatalf("trace id lost, got=%q", got)
	}
	if got, _ := SpanIDFrom(ctx); got != "store" {
		t.Fatalf("span=%q want store", got)
	}
}

func TestStart_TraceIDSources(t *testing.T) {
	cases := []struct {
		name     string
		parent   context.Context
		incoming string
		want     string
	}{
		{"parent wins", WithTraceID(context.Background(), "parent"), "caller", "parent"},
		{"caller id", context.Background(), "req-42_a", "req-42_a"},
		{"caller id with spaces is replaced", context.Background(), "bad id\n", ""},
		{"caller id too long is replaced", context.Background(), strings.Repeat("a", 65), ""},
		{"generated", context.Background(), "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Start(tc.parent, "api", tc.incoming)
			got, ok := TraceIDFrom(ctx)
			if !ok {
				t.Fatalf("no trace id")
			}
			if tc.want != "" && got != tc.want {
				t.Fatalf("trace=%q want %q", got, tc.want)
			}
			if tc.want == "" && len(got) != 32 {
				t.Fatalf("expected a generated id, got %q", got)
			}
			if span, _ := SpanIDFrom(ctx); span != "api" {
				t.Fatalf("span=%q", span)
			}
		})
	}
}

func TestNewTraceID_Hex32(t *testing.T) {
	id := NewTraceID()
	if len(id) != 32 || !ValidTraceID(id) {
		t.Fatalf("expected 32 hex chars, got %q", id)
	}
	if id == NewTraceID() {
		t.Fatalf("trace ids must differ")
	}
}
