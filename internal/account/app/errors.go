package app

import (
	"errors"

	"shamtool/modules/kit/errx"
)

type Code = errx.Code

const (
	CodeInvalidAuthCode Code = "AUTH_INVALID_CODE"
	// CodeInternalServer reuses the kit's system code.
	CodeInternalServer Code = errx.CodeInternal
	// CodeUnavailable reuses the kit's system code.
	CodeUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

// Sentinels; derive with WithData/WithCause, never mutate.
var (
	ErrInvalidAuthCode = errx.NewBiz(CodeInvalidAuthCode, "discord rejected the authorization code")
	ErrInternalServer  = errx.ErrInternal
	ErrUnavailable     = errx.ErrUnavailable
)

// GetErrorReasonCode returns the reason attached to err, if any.
func GetErrorReasonCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason()
	}
	return ""
}
