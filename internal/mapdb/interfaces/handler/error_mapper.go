package handler

import (
	"context"
	"errors"
	nethttp "net/http"

	"shamtool/internal/mapdb/app"
	"shamtool/internal/shared/dbentity"
	"shamtool/internal/shared/transport"
	"shamtool/modules/kit/errx"
	"shamtool/modules/kit/logx"
)

// HandleError maps err to an HTTP status and envelope code and logs it once:
// business rejections at info, everything else as a system error.
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (status, code int, msg string) {
	switch {
	case errors.Is(err, app.ErrReqParamERR):
		status, code, msg = nethttp.StatusBadRequest, transport.InvalidParam, causeText(err)
	case errors.Is(err, errx.ErrForbidden):
		status, code, msg = nethttp.StatusForbidden, transport.Forbidden, "You do not have the privileges to use this API function."
	case errors.Is(err, app.ErrMapNotFound), errors.Is(err, dbentity.ErrNotFound):
		status, code, msg = nethttp.StatusNotFound, transport.NotFound, "Map not found."
	case errors.Is(err, app.ErrMapNotInCategory):
		status, code, msg = nethttp.StatusNotFound, transport.NotFound, "Map is not part of that category."
	default:
		logx.ReportSysError(ctx, log, logx.NewSysLog(action, err))
		transport.SetErrorReason(ctx, reasonOf(err))
		return nethttp.StatusInternalServerError, transport.SystemError, "Internal server error."
	}
	var e *errx.Error
	if errors.As(err, &e) {
		transport.SetErrorReason(ctx, e.CodeText())
		logx.ReportBiz(ctx, log, logx.NewBizLog(action, e.CodeText(), msg))
	}
	return status, code, msg
}

func reasonOf(err error) string {
	if r := app.GetErrorReasonCode(err); r != "" {
		return r
	}
	var e *errx.Error
	if errors.As(err, &e) {
		return e.CodeText()
	}
	return "UNKNOWN"
}

// causeText is the innermost message, which for parameter errors names the parameter.
func causeText(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
