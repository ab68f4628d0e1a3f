// Package tracex carries request correlation ids through a context.
//
// A trace id names one request end to end and may arrive from the caller
// (X-Request-ID); a span id names the module handling it ("api", "mapdb",
// "account", "store").
package tracex

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID is read from requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// maxTraceIDLen bounds ids accepted from callers.
const maxTraceIDLen = 64

type ids struct {
	trace string
	span  string
}

type idsKey struct{}

func from(ctx context.Context) ids {
	if ctx == nil {
		return ids{}
	}
	v, _ := ctx.Value(idsKey{}).(ids)
	return v
}

func with(ctx context.Context, v ids) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, idsKey{}, v)
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	v := from(ctx)
	v.trace = traceID
	return with(ctx, v)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	t := from(ctx).trace
	return t, t != ""
}

// WithSpanID keeps the trace id and replaces the span.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	v := from(ctx)
	v.span = spanID
	return with(ctx, v)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	s := from(ctx).span
	return s, s != ""
}

// Start opens span in ctx. The trace id is kept when ctx has one, taken from
// incoming when it is a usable id, and generated otherwise.
func Start(ctx context.Context, span, incoming string) context.Context {
	v := from(ctx)
	if v.trace == "" {
		if ValidTraceID(incoming) {
			v.trace = incoming
		} else {
			v.trace = NewTraceID()
		}
	}
	v.span = span
	return with(ctx, v)
}

// ValidTraceID accepts short ids made of letters, digits, '-' and '_' so a
// caller cannot inject arbitrary text into log lines.
func ValidTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// NewTraceID returns a random UUID as 32 hex chars.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
