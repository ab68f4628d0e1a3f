package errx

// System-level codes shared by every module. Business codes (MAP_NOT_FOUND and
// friends) belong to the module that owns them and are not declared here.
const (
	// CodeInternal is the catch-all for unexpected failures.
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable covers a dependency that could not serve the call (database, Discord, network).
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout is a dependency or request deadline.
	CodeTimeout Code = "TIMEOUT"
	// CodeReqParamError is an invalid request parameter.
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	// CodeForbidden is a caller without the privileges for the route.
	CodeForbidden Code = "FORBIDDEN"
)

// Shared sentinels. Derive with WithData/WithCause, never mutate.
var (
	ErrInternal    = NewSys(CodeInternal, "internal server error")
	ErrUnavailable = NewSys(CodeUnavailable, "service unavailable")
	ErrTimeout     = NewSys(CodeTimeout, "request timed out")
	ErrReqParamERR = NewBiz(CodeReqParamError, "invalid request parameter")
	ErrForbidden   = NewBiz(CodeForbidden, "you do not have the privileges to use this API function")
)
