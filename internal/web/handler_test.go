package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
	"github.com/donaldgifford/ml-explorer/internal/mercadolivre/mocks"
	"github.com/donaldgifford/ml-explorer/internal/session"
	"github.com/donaldgifford/ml-explorer/internal/web"
	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

type fixture struct {
	e       *echo.Echo
	auth    *mocks.MockAuthenticator
	catalog *mocks.MockProductCatalog
	store   *session.MemoryStore
}

func newFixture(t *testing.T, clientID string) *fixture {
	t.Helper()

	f := &fixture{
		e:       echo.New(),
		auth:    mocks.NewMockAuthenticator(t),
		catalog: mocks.NewMockProductCatalog(t),
		store:   session.NewMemoryStore(),
	}
	h := web.NewHandler(f.auth, f.catalog, session.NewManager(f.store), web.WithClientID(clientID))
	web.RegisterRoutes(f.e, h)
	return f
}

func (f *fixture) seed(t *testing.T, id string, s *session.Session) *http.Cookie {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), id, s, time.Hour))
	return &http.Cookie{Name: session.CookieName, Value: id}
}

func (f *fixture) do(target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestIndex_NotAuthenticated(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	rec := f.do("/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "Conectar Mercado Livre")
}

func TestIndex_DemoSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	cookie := f.seed(t, "s1", &session.Session{AccessToken: mercadolivre.DemoToken})

	f.catalog.EXPECT().
		Search(mock.Anything, mock.Anything, "notebook", "").
		Return(mercadolivre.SearchResult{
			Products:       mercadolivre.FixtureGenerator{}.Generate("notebook", 4),
			Mock:           true,
			FallbackReason: domain.FallbackDemo,
		}).
		Once()

	rec := f.do("/", cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Modo de Demonstração")
	assert.Contains(t, body, "Notebook Samsung Book")
}

func TestIndex_QueryAndBrandFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	cookie := f.seed(t, "s1", &session.Session{AccessToken: "APP_USR-1"})

	f.catalog.EXPECT().
		Search(mock.Anything, mock.Anything, "celular", "555").
		Return(mercadolivre.SearchResult{Products: []domain.Product{
			{ID: "MLB1", Title: "Galaxy S24", Brand: "Samsung"},
			{ID: "MLB2", Title: "iPhone 15", Brand: "Apple"},
		}}).
		Once()

	rec := f.do("/?q=celular&brand=samsung&seller_id=555", cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Galaxy S24")
	assert.NotContains(t, body, "iPhone 15")
	assert.NotContains(t, body, "Modo de Demonstração")
}

func TestIndex_SlotCarriesSessionToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	cookie := f.seed(t, "s1", &session.Session{AccessToken: "APP_USR-old", RefreshToken: "TG-1"})

	f.catalog.EXPECT().
		Search(mock.Anything, mock.Anything, "notebook", "").
		RunAndReturn(func(ctx context.Context, slot mercadolivre.TokenSlot, _, _ string) mercadolivre.SearchResult {
			tok, ok := slot.Token(ctx)
			assert.True(t, ok)
			assert.Equal(t, "APP_USR-old", tok.AccessToken)
			assert.NoError(t, slot.SetToken(ctx, mercadolivre.Token{AccessToken: "APP_USR-new", RefreshToken: "TG-2"}))
			return mercadolivre.SearchResult{Products: []domain.Product{{ID: "1", Title: "x"}}, Refreshed: true}
		}).
		Once()

	rec := f.do("/", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "APP_USR-new", stored.AccessToken)
	assert.Equal(t, "TG-2", stored.RefreshToken)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		clientID   string
		authURL    string
		wantStatus int
		wantLoc    string
	}{
		{name: "no client id", clientID: "", wantStatus: http.StatusFound, wantLoc: "/login-mock"},
		{name: "placeholder client id", clientID: "seu_client_id", wantStatus: http.StatusFound, wantLoc: "/login-mock"},
		{
			name:       "real client id",
			clientID:   "123",
			authURL:    "https://auth.mercadolivre.com.br/authorization?client_id=123",
			wantStatus: http.StatusFound,
			wantLoc:    "https://auth.mercadolivre.com.br/authorization?client_id=123",
		},
		{name: "url cannot be built", clientID: "123", authURL: "", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.clientID)
			if tt.clientID != "" && tt.clientID != web.PlaceholderClientID {
				f.auth.EXPECT().AuthCodeURL(mock.AnythingOfType("string")).Return(tt.authURL).Once()
			}

			rec := f.do("/login", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLoc, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestLogin_StoresState(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	var sent string
	f.auth.EXPECT().
		AuthCodeURL(mock.AnythingOfType("string")).
		RunAndReturn(func(state string) string {
			sent = state
			return "https://auth.mercadolivre.com.br/authorization?state=" + state
		}).
		Once()

	rec := f.do("/login", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.NotEmpty(t, sent)

	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	stored, err := f.store.Get(context.Background(), ck.Value)
	require.NoError(t, err)
	assert.Equal(t, sent, stored.OAuthState)
	assert.False(t, stored.Authenticated())
}

func TestLoginMock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	rec := f.do("/login-mock", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	stored, err := f.store.Get(context.Background(), ck.Value)
	require.NoError(t, err)
	assert.Equal(t, mercadolivre.DemoToken, stored.AccessToken)
}

func TestLoginMock_IssuesNewSessionID(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	planted := f.seed(t, "attacker-id", &session.Session{})

	rec := f.do("/login-mock", planted)
	require.Equal(t, http.StatusFound, rec.Code)

	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	assert.NotEqual(t, "attacker-id", ck.Value)

	_, err := f.store.Get(context.Background(), "attacker-id")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestCallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		state      string
		setup      func(a *mocks.MockAuthenticator)
		wantStatus int
		wantBody   string
		wantToken  string
	}{
		{
			name:       "missing code",
			target:     "/callback",
			state:      "st-1",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Erro: Código de autorização não recebido.",
		},
		{
			name:       "blank code",
			target:     "/callback?code=%20%20&state=st-1",
			state:      "st-1",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Erro: Código de autorização não recebido.",
		},
		{
			name:       "state mismatch",
			target:     "/callback?code=TG-good&state=other",
			state:      "st-1",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Erro: Estado de autorização inválido.",
		},
		{
			name:       "state missing from request",
			target:     "/callback?code=TG-good",
			state:      "st-1",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Erro: Estado de autorização inválido.",
		},
		{
			name:       "no login started",
			target:     "/callback?code=TG-good&state=",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Erro: Estado de autorização inválido.",
		},
		{
			name:   "provider rejects",
			target: "/callback?code=TG-bad&state=st-1",
			state:  "st-1",
			setup: func(a *mocks.MockAuthenticator) {
				a.EXPECT().ExchangeCode(mock.Anything, "TG-bad").Return(nil, &mercadolivre.Error{
					Kind:        mercadolivre.KindProviderRejected,
					Code:        "invalid_grant",
					Description: "code expired",
				}).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Erro na autenticação: code expired",
		},
		{
			name:   "provider error without description",
			target: "/callback?code=TG-bad&state=st-1",
			state:  "st-1",
			setup: func(a *mocks.MockAuthenticator) {
				a.EXPECT().ExchangeCode(mock.Anything, "TG-bad").Return(nil, &mercadolivre.Error{
					Kind: mercadolivre.KindTransport,
					Err:  context.DeadlineExceeded,
				}).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Erro na autenticação: Erro desconhecido",
		},
		{
			name:   "success",
			target: "/callback?code=TG-good&state=st-1",
			state:  "st-1",
			setup: func(a *mocks.MockAuthenticator) {
				a.EXPECT().ExchangeCode(mock.Anything, "TG-good").Return(&mercadolivre.Token{
					AccessToken:  "APP_USR-real",
					RefreshToken: "TG-refresh",
					UserID:       "99",
				}, nil).Once()
			},
			wantStatus: http.StatusFound,
			wantToken:  "APP_USR-real",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, "123")
			if tt.setup != nil {
				tt.setup(f.auth)
			}
			var cookie *http.Cookie
			if tt.state != "" {
				cookie = f.seed(t, "pre-login", &session.Session{OAuthState: tt.state})
			}

			rec := f.do(tt.target, cookie)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantToken == "" {
				return
			}

			assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
			ck := sessionCookie(rec)
			require.NotNil(t, ck)
			stored, err := f.store.Get(context.Background(), ck.Value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, stored.AccessToken)
			assert.Equal(t, "TG-refresh", stored.RefreshToken)
			assert.Equal(t, "99", stored.UserID)
			assert.Empty(t, stored.OAuthState)
		})
	}
}

func TestCallback_IssuesNewSessionID(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	planted := f.seed(t, "attacker-id", &session.Session{
		AccessToken: mercadolivre.DemoToken,
		OAuthState:  "st-1",
	})
	f.auth.EXPECT().
		ExchangeCode(mock.Anything, "CODE").
		Return(&mercadolivre.Token{AccessToken: "VICTIM", RefreshToken: "TG-victim"}, nil).
		Once()

	rec := f.do("/callback?code=CODE&state=st-1", planted)
	require.Equal(t, http.StatusFound, rec.Code)

	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	assert.NotEqual(t, "attacker-id", ck.Value)

	_, err := f.store.Get(context.Background(), "attacker-id")
	require.ErrorIs(t, err, session.ErrNotFound)

	stored, err := f.store.Get(context.Background(), ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "VICTIM", stored.AccessToken)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "123")
	cookie := f.seed(t, "s1", &session.Session{AccessToken: "some-token"})

	rec := f.do("/logout", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	_, err := f.store.Get(context.Background(), "s1")
	require.ErrorIs(t, err, session.ErrNotFound)
}
