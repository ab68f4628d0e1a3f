// Package discord talks to the Discord OAuth2 and user APIs.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"shamtool/internal/account/domain"
	"shamtool/internal/shared/serverconfig"
)

const (
	DefaultAPIBaseURL = "https://discord.com/api/"
	defaultTimeout    = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// APIError is an error answer from Discord, either an OAuth error
// (error/error_description) or an API error (code/message).
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api error (status %d): %s: %s", e.Status, e.Code, e.Message)
}

// Rejected reports whether Discord refused the caller's input rather than failed.
func (e *APIError) Rejected() bool {
	switch e.Code {
	case "invalid_grant", "invalid_request", "access_denied":
		return true
	}
	return e.Status == http.StatusUnauthorized
}

type Client struct {
	oauth *oauth2.Config
	base  string
	http  *http.Client
}

func NewClient(cfg serverconfig.DiscordConfig) *Client {
	base := cfg.APIBaseURL
	if base == "" {
		base = DefaultAPIBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"identify"}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "oauth2/authorize",
				TokenURL:  base + "oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// AuthorizeURL is where the user grants access; Discord redirects back with
// code and the same state.
func (c *Client) AuthorizeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			apiErr := &APIError{Code: re.ErrorCode, Message: re.ErrorDescription}
			if re.Response != nil {
				apiErr.Status = re.Response.StatusCode
			}
			if apiErr.Code == "" {
				apiErr.Code, apiErr.Message = decodeAPIError(re.Body)
			}
			return nil, apiErr
		}
		return nil, fmt.Errorf("discord token exchange: %w", err)
	}
	return tok, nil
}

// CurrentUser fetches the user the token was issued for.
func (c *Client) CurrentUser(ctx context.Context, tok *oauth2.Token) (domain.DiscordUser, error) {
	var u domain.DiscordUser
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"users/@me", nil)
	if err != nil {
		return u, err
	}
	req.Header.Set("Accept", "application/json")
	tok.SetAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return u, fmt.Errorf("discord users/@me: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return u, fmt.Errorf("discord users/@me: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		code, msg := decodeAPIError(body)
		return u, &APIError{Status: resp.StatusCode, Code: code, Message: msg}
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return u, fmt.Errorf("discord users/@me: decode: %w", err)
	}
	return u, nil
}

// decodeAPIError understands both error shapes Discord uses.
func decodeAPIError(body []byte) (code, message string) {
	var payload struct {
		Error            string          `json:"error"`
		ErrorDescription string          `json:"error_description"`
		Code             json.RawMessage `json:"code"`
		Message          string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "unknown", strings.TrimSpace(string(body))
	}
	if payload.Error != "" {
		return payload.Error, payload.ErrorDescription
	}
	if len(payload.Code) != 0 {
		return strings.Trim(string(payload.Code), `"`), payload.Message
	}
	return "unknown", payload.Message
}
