package app

import (
	"errors"

	"shamtool/internal/shared/dbentity"
	"shamtool/modules/kit/errx"
)

type Code = errx.Code

const (
	CodeMapNotFound      Code = "MAP_NOT_FOUND"
	CodeMapNotInCategory Code = "MAP_NOT_IN_CATEGORY"
	// CodeUnavailable reuses the kit's system code.
	CodeUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrMapNotFound      = errx.NewBiz(CodeMapNotFound, "no map with that code")
	ErrMapNotInCategory = errx.NewBiz(CodeMapNotInCategory, "map is not part of that category")
	ErrUnavailable      = errx.ErrUnavailable
	ErrReqParamERR      = errx.ErrReqParamERR
	ErrInternal         = errx.ErrInternal
)

// GetErrorReasonCode returns the reason attached to err, if any.
func GetErrorReasonCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason()
	}
	return ""
}

// asUnavailable keeps business and configuration errors as they are and marks
// everything else as a storage outage.
func asUnavailable(err error, reason Reason) error {
	var e *Error
	if errors.As(err, &e) && (!e.IsSystem() || errors.Is(err, dbentity.ErrConfiguration)) {
		return err
	}
	return ErrUnavailable.WithReason(reason).WithCause(err)
}
