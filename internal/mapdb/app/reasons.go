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
	// Technical reasons, for logs only.
	ReasonMapRepoUnavailable = NewReason("MAP_REPO_UNAVAILABLE", "map repository unavailable")
	ReasonMapLoadFail        = NewReason("MAP_LOAD_FAIL", "map row could not be read")
	ReasonMapSaveFail        = NewReason("MAP_SAVE_FAIL", "map rows could not be written")
)
