package errx

import (
	"errors"
	"testing"
)

func TestError_IsComparesCodeOnly(t *testing.T) {
	e1 := NewBiz("MAP_X", "x").WithData("k", "v").WithCause(errors.New("cause1"))
	e2 := NewBiz("MAP_X", "x2").WithData("k2", "v2").WithCause(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("expected errors.Is(e1, e2) by code, e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("MAP_Y", "x")) {
		t.Fatalf("different codes must not match")
	}
}

func TestError_BizKeepsCauseWithoutStack(t *testing.T) {
	cause := errors.New("db down")
	err := NewBiz("MAP_NOT_FOUND", "map not found").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("business errors must not capture a stack, got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause chain lost, err=%v", err)
	}
	if err.IsSystem() {
		t.Fatalf("business error reported as system")
	}
}

func TestError_SysCapturesStackOnce(t *testing.T) {
	cause := errors.New("io timeout")
	sys := NewSys("SYS_DB_UNAVAILABLE", "database unavailable").WithCause(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("expected a stack on first wrap, got=%v", got)
	}

	sys2 := NewSys("SYS_UPSTREAM", "upstream failed").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("stack already present in chain, got=%v", got)
	}
}

func TestError_DataIsCopied(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := NewBiz("MAP_X", "").WithDataMap(m)
	m["k"] = "mutated"
	if got := err.Data()["k"]; got != "v" {
		t.Fatalf("data must be copied at construction, got=%v", got)
	}
}

func TestError_MessageFormatting(t *testing.T) {
	if got := NewSys("X", "").Error(); got != "X" {
		t.Fatalf("got=%q", got)
	}
	if got := NewSys("X", "boom").Error(); got != "X: boom" {
		t.Fatalf("got=%q", got)
	}
	if got := NewSys("X", "boom").WithCause(errors.New("io")).Error(); got != "X: boom: io" {
		t.Fatalf("got=%q", got)
	}
}
