// Package session keeps per-browser state (the marketplace tokens) behind a
// cookie-identified Store.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
)

// ErrNotFound is returned by Store.Get when no live session has the id.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Session is the data stored for one browser.
type Session struct {
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	OAuthState   string    `json:"oauth_state,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Token returns the marketplace token held by the session.
func (s *Session) Token() mercadolivre.Token {
	return mercadolivre.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UserID:       s.UserID,
	}
}

// SetToken replaces the session's tokens.
func (s *Session) SetToken(tok mercadolivre.Token) {
	s.AccessToken = tok.AccessToken
	s.RefreshToken = tok.RefreshToken
	s.UserID = tok.UserID
}

// Authenticated reports whether the session holds an access token.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Demo reports whether the session was started through the demo login.
func (s *Session) Demo() bool {
	return s != nil && s.AccessToken == mercadolivre.DemoToken
}

// Store persists sessions by id. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
