package domain

import "shamtool/modules/kit/errx"

// Code is a domain error code. The domain says what went wrong (code) and in
// which business context (data); the cause is for tracing only.
type Code = errx.Code

const (
	CodeInvalidIdentity Code = "ACCOUNT_INVALID_IDENTITY"
	// CodeSystemUnavailable reuses the kit's system code.
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

func NewError(code Code, data map[string]any, cause error) *Error {
	base := newByCodeKind(code)
	if data != nil {
		base = base.WithDataMap(data)
	}
	if cause != nil {
		base = base.WithCause(cause)
	}
	return base
}

var (
	ErrInvalidIdentity   = errx.NewBiz(CodeInvalidIdentity, "")
	ErrSystemUnavailable = errx.ErrUnavailable
)

func newByCodeKind(code Code) *Error {
	switch code {
	case CodeSystemUnavailable:
		return errx.ErrUnavailable
	default:
		return errx.NewBiz(code, "")
	}
}
