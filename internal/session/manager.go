package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
)

// CookieName is the cookie carrying the session id.
const CookieName = "ml_session"

// Manager ties a Store to the session cookie.
type Manager struct {
	store   Store
	ttl     time.Duration
	secure  bool
	logger  *slog.Logger
	nowFunc func() time.Time
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithTTL sets the session lifetime, used for both the store entry and the
// cookie's Max-Age.
func WithTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithSecureCookie marks the cookie Secure.
func WithSecureCookie(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithManagerLogger sets the logger.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a Manager backed by store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   store,
		ttl:     DefaultTTL,
		logger:  slog.New(slog.DiscardHandler),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// Get returns the session stored under id. An empty id reads as
// ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, id)
}

// Load returns the session named by the request cookie and its id. A missing
// cookie, unknown id or store failure yields an empty session and id "".
func (m *Manager) Load(c echo.Context) (string, *Session) {
	id := cookieValue(c)
	s, err := m.Get(c.Request().Context(), id)
	switch {
	case err == nil:
		return id, s
	case !errors.Is(err, ErrNotFound):
		m.logger.Warn("loading session failed", "error", err)
	}
	return "", &Session{CreatedAt: m.nowFunc()}
}

// Save stores s under id, issuing a new id and cookie when id is "". It
// returns the id used.
func (m *Manager) Save(c echo.Context, id string, s *Session) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.nowFunc()
	}
	if err := m.store.Save(c.Request().Context(), id, s, m.ttl); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}
	c.SetCookie(m.cookie(id, int(m.ttl.Seconds())))
	return id, nil
}

// Rotate stores s under a fresh id and deletes oldID, so an id known before
// login never carries the logged-in tokens. It returns the new id.
func (m *Manager) Rotate(c echo.Context, oldID string, s *Session) (string, error) {
	id, err := m.Save(c, "", s)
	if err != nil {
		return "", err
	}
	if oldID != "" && oldID != id {
		if err := m.store.Delete(c.Request().Context(), oldID); err != nil {
			m.logger.Warn("deleting rotated session failed", "error", err)
		}
	}
	return id, nil
}

// Destroy deletes the request's session and expires the cookie.
func (m *Manager) Destroy(c echo.Context) error {
	id := cookieValue(c)
	c.SetCookie(m.cookie("", -1))
	if id == "" {
		return nil
	}
	if err := m.store.Delete(c.Request().Context(), id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Slot adapts the session stored under id to mercadolivre.TokenSlot.
func (m *Manager) Slot(id string, s *Session) *Slot {
	return &Slot{manager: m, id: id, session: s}
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func cookieValue(c echo.Context) string {
	ck, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

// Slot is the TokenSlot view of one session. Refreshed tokens are written
// back to the store.
type Slot struct {
	manager *Manager
	id      string
	session *Session
}

var _ mercadolivre.TokenSlot = (*Slot)(nil)

// Token implements mercadolivre.TokenSlot.
func (s *Slot) Token(context.Context) (mercadolivre.Token, bool) {
	if !s.session.Authenticated() {
		return mercadolivre.Token{}, false
	}
	return s.session.Token(), true
}

// SetToken implements mercadolivre.TokenSlot.
func (s *Slot) SetToken(ctx context.Context, tok mercadolivre.Token) error {
	s.session.SetToken(tok)
	if s.id == "" {
		return nil
	}
	if err := s.manager.store.Save(ctx, s.id, s.session, s.manager.ttl); err != nil {
		return fmt.Errorf("persisting refreshed token: %w", err)
	}
	return nil
}
