package app

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"shamtool/internal/account/domain"
)

type DiscordClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	CurrentUser(ctx context.Context, tok *oauth2.Token) (domain.DiscordUser, error)
}

type LoginHistoryRepo interface {
	Save(ctx context.Context, history domain.LoginHistory) error
}

// TokenIssuer signs a session token for a Discord user id.
type TokenIssuer func(subject, username string, ttl time.Duration) (string, error)
