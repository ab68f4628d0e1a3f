package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

const (
	maxCauseDepth  = 20
	maxStackFrames = 32
)

// described is the surface of an errx.Error the reporter reads; logx keeps no
// import of errx so any error type can opt in.
type described interface {
	error
	CodeText() string
	Msg() string
	Data() map[string]any
	Reason() string
	Stack() []uintptr
}

type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog flattens err for a single log line. Code, message, data and
// reason come from the outermost described error; the stack from the first
// described error in the chain that captured one.
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error(), CauseChain: causeChain(err)}

	var d described
	if errors.As(err, &d) {
		out.Code = d.CodeText()
		out.Msg = d.Msg()
		out.Data = d.Data()
		out.Reason = d.Reason()
	}
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if sd, ok := cur.(described); ok && len(sd.Stack()) != 0 {
			out.Origin, out.Stack = formatStack(sd.Stack())
			break
		}
	}
	return out
}

func causeChain(err error) []string {
	var out []string
	cur := errors.Unwrap(err)
	for i := 0; i < maxCauseDepth && cur != nil; i++ {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
		cur = errors.Unwrap(cur)
	}
	return out
}

// formatStack renders one "function file:line" per frame; origin is the first.
func formatStack(pcs []uintptr) (origin, stack string) {
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, len(pcs))
	for len(lines) < maxStackFrames {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		lines = append(lines, f.Function+" "+f.File+":"+strconv.Itoa(f.Line))
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
