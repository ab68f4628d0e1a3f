package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// Business rejections.
	ReasonCodeRejected     = NewReason("DISCORD_CODE_REJECTED", "discord rejected the authorization code")
	ReasonIdentityRejected = NewReason("DISCORD_IDENTITY_REJECTED", "discord returned an unusable identity")
)

var (
	// Technical reasons, for logs only.
	ReasonDiscordUnavailable    = NewReason("DISCORD_UNAVAILABLE", "discord api unavailable")
	ReasonTokenIssue            = NewReason("TOKEN_ISSUE", "session token could not be signed")
	ReasonLoginHistoryWriteFail = NewReason("LOGIN_HISTORY_WRITE_FAIL", "login history write failed")
)
