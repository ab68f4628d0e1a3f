package app

import (
	"context"
	"errors"
	"time"

	"shamtool/internal/account/domain"
)

// LoginResult is what a finished Discord login hands back to the client.
type LoginResult struct {
	User    domain.DiscordUser
	Session string
	Expires time.Time
}

type LoginService struct {
	discord DiscordClient
	lhRepo  LoginHistoryRepo
	issue   TokenIssuer
	ttl     time.Duration
	now     func() time.Time
}

func NewLoginService(discord DiscordClient, lhRepo LoginHistoryRepo, issue TokenIssuer, ttl time.Duration) *LoginService {
	return &LoginService{
		discord: discord,
		lhRepo:  lhRepo,
		issue:   issue,
		ttl:     ttl,
		now:     time.Now,
	}
}

// AuthorizeURL is the Discord consent page for a login bound to state.
func (s *LoginService) AuthorizeURL(state string) string {
	return s.discord.AuthorizeURL(state)
}

// Login finishes the OAuth flow for code and opens a session for the Discord user.
func (s *LoginService) Login(ctx context.Context, code, ip string) (*LoginResult, error) {
	tok, err := s.discord.ExchangeCode(ctx, code)
	if err != nil {
		return nil, discordError(err, ReasonCodeRejected)
	}

	user, err := s.discord.CurrentUser(ctx, tok)
	if err != nil {
		return nil, discordError(err, ReasonIdentityRejected)
	}
	if err := user.Validate(); err != nil {
		return nil, ErrInvalidAuthCode.WithReason(ReasonIdentityRejected).WithCause(err)
	}

	now := s.now()
	ttl := s.ttl
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	lh := domain.LoginHistory{DiscordID: user.ID, Username: user.Tag(), CTime: now, Ip: ip, State: domain.LoginSuccess}

	session, err := s.issue(user.ID, user.Tag(), ttl)
	if err != nil {
		lh.State = domain.LoginFail
		out := ErrInternalServer.WithReason(ReasonTokenIssue).WithData("discord_id", user.ID).WithCause(err)
		if herr := s.lhRepo.Save(ctx, lh); herr != nil {
			out = out.WithData("history_error", herr.Error())
		}
		return nil, out
	}

	if err := s.lhRepo.Save(ctx, lh); err != nil {
		return nil, ErrUnavailable.WithReason(ReasonLoginHistoryWriteFail).WithCause(err)
	}

	return &LoginResult{User: user, Session: session, Expires: now.Add(ttl)}, nil
}

const defaultSessionTTL = 7 * 24 * time.Hour

// rejection is implemented by client errors that mean Discord refused the input.
type rejection interface {
	error
	Rejected() bool
}

// discordError separates a refused code from an outage.
func discordError(err error, rejected Reason) error {
	var r rejection
	if errors.As(err, &r) && r.Rejected() {
		return ErrInvalidAuthCode.WithReason(rejected).WithCause(err)
	}
	return ErrUnavailable.WithReason(ReasonDiscordUnavailable).WithCause(err)
}
