package handler

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shamtool/internal/account/app"
	"shamtool/internal/shared/queryparam"
	transporthttp "shamtool/internal/shared/transport/http"
	"shamtool/modules/kit/logx"
	"shamtool/modules/kit/tracex"
)

const (
	stateCookie = "shamtool_oauth_state"
	stateMaxAge = 10 * time.Minute
)

type OAuthHandler struct {
	svc *app.LoginService
	log logx.Logger
	// secure marks the state cookie Secure; off for plain-http local setups.
	secure bool
}

func NewOAuthHandler(svc *app.LoginService, log logx.Logger, secure bool) *OAuthHandler {
	return &OAuthHandler{svc: svc, log: log, secure: secure}
}

func (h *OAuthHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/oauth2/discord", h.Discord)
}

type userView struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"globalName,omitempty"`
	Tag           string `json:"tag"`
}

type loginView struct {
	User      userView  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Discord starts the login when there is no code and finishes it when Discord
// redirects back with one.
func (h *OAuthHandler) Discord(c *gin.Context) {
	src := queryparam.FromGin(c)

	denied, hasDenied, err := queryparam.String(src, "error", false)
	if err != nil {
		h.error(c, err)
		return
	}
	if hasDenied {
		h.clearState(c)
		h.error(c, errAccessDenied.WithData("discord_error", denied))
		return
	}

	code, hasCode, err := queryparam.String(src, "code", false)
	if err != nil {
		h.error(c, err)
		return
	}
	if !hasCode {
		h.start(c)
		return
	}

	state, _, err := queryparam.String(src, "state", true)
	if err != nil {
		h.error(c, err)
		return
	}
	want, cerr := c.Cookie(stateCookie)
	h.clearState(c)
	if cerr != nil || want == "" || want != state {
		h.error(c, errStateMismatch)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), code, c.ClientIP())
	if err != nil {
		h.error(c, err)
		return
	}
	transporthttp.OK(c, loginView{
		User: userView{
			ID:            res.User.ID,
			Username:      res.User.Username,
			Discriminator: res.User.Discriminator,
			GlobalName:    res.User.GlobalName,
			Tag:           res.User.Tag(),
		},
		Token:     res.Session,
		ExpiresAt: res.Expires.UTC(),
	})
}

func (h *OAuthHandler) start(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(nethttp.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateMaxAge.Seconds()), "/oauth2", "", h.secure, true)
	transporthttp.OK(c, gin.H{"url": h.svc.AuthorizeURL(state)})
}

func (h *OAuthHandler) clearState(c *gin.Context) {
	c.SetCookie(stateCookie, "", -1, "/oauth2", "", h.secure, true)
}

func (h *OAuthHandler) error(c *gin.Context, err error) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")
	status, code, msg := HandleError(ctx, h.log, "discord login", err)
	transporthttp.Fail(c, status, code, msg)
}
