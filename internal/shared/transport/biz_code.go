package transport

// BizCode is the envelope code carried in every JSON response and access log line.
type BizCode int

// Envelope codes. They line up with HTTP statuses so the access log level
// (0 info, 1..499 warn, 500+ error) follows the same split.
const (
	OK                  = 0
	InvalidParam        = 400
	Forbidden           = 403
	NotFound            = 404
	SystemError         = 500
	UpstreamUnavailable = 503
)
