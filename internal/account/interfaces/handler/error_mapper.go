package handler

import (
	"context"
	"errors"
	nethttp "net/http"

	"shamtool/internal/account/app"
	"shamtool/internal/shared/transport"
	"shamtool/modules/kit/errx"
	"shamtool/modules/kit/logx"
)

var (
	errStateMismatch = errx.NewBiz(errx.CodeForbidden, "oauth state does not match")
	errAccessDenied  = errx.NewBiz("AUTH_ACCESS_DENIED", "user declined the discord authorization")
)

// HandleError maps a login failure to an HTTP status and envelope code, logging it once.
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (status, code int, msg string) {
	switch {
	case errors.Is(err, errx.ErrReqParamERR):
		status, code, msg = nethttp.StatusBadRequest, transport.InvalidParam, causeText(err)
	case errors.Is(err, app.ErrInvalidAuthCode):
		status, code, msg = nethttp.StatusBadRequest, transport.InvalidParam, "Discord refused the authorization code."
	case errors.Is(err, errAccessDenied):
		status, code, msg = nethttp.StatusForbidden, transport.Forbidden, "Discord authorization was declined."
	case errors.Is(err, errStateMismatch):
		status, code, msg = nethttp.StatusForbidden, transport.Forbidden, "Login state expired or does not match, please retry."
	case errors.Is(err, app.ErrUnavailable):
		logx.ReportSysError(ctx, log, logx.NewSysLog(action, err))
		transport.SetErrorReason(ctx, reasonOf(err))
		return nethttp.StatusServiceUnavailable, transport.UpstreamUnavailable, "Login is temporarily unavailable."
	default:
		logx.ReportSysError(ctx, log, logx.NewSysLog(action, err))
		transport.SetErrorReason(ctx, reasonOf(err))
		return nethttp.StatusInternalServerError, transport.SystemError, "Internal server error."
	}
	var e *errx.Error
	if errors.As(err, &e) {
		reason := reasonOf(err)
		transport.SetErrorReason(ctx, reason)
		logx.ReportBiz(ctx, log, logx.NewBizLog(action, reason, msg))
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

func causeText(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
