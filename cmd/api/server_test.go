package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/model"
	"payment-dashboard/internal/supabase"
	"payment-dashboard/internal/view"
)

var merchant = model.User{ID: "user-1", Email: "merchant@example.com"}

type stubProvider struct {
	tokens    map[string]model.User
	refreshed map[string]*model.Session
	signIn    func(email, password string) (*model.Session, error)
	signUp    func(email, password string) (*model.Session, error)
	signedOut []string

	// userErr and refreshErr, when set, fail every lookup.
	userErr    error
	refreshErr error
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		tokens:    map[string]model.User{"valid-token": merchant},
		refreshed: map[string]*model.Session{},
	}
}

func (p *stubProvider) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	if p.signIn == nil {
		return nil, auth.ErrInvalidCredentials
	}
	return p.signIn(email, password)
}

func (p *stubProvider) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	if p.signUp == nil {
		return nil, nil
	}
	return p.signUp(email, password)
}

func (p *stubProvider) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	session, ok := p.refreshed[refreshToken]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return session, nil
}

func (p *stubProvider) SignOut(ctx context.Context, accessToken string) error {
	p.signedOut = append(p.signedOut, accessToken)
	return nil
}

func (p *stubProvider) User(ctx context.Context, accessToken string) (*model.User, error) {
	if p.userErr != nil {
		return nil, p.userErr
	}
	user, ok := p.tokens[accessToken]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &user, nil
}

type fakeSource struct {
	intents []model.PaymentIntent
	err     error
}

func (f *fakeSource) ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error) {
	return f.intents, f.err
}

func (f *fakeSource) GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, intent := range f.intents {
		if intent.ID == id {
			return &intent, nil
		}
	}
	return nil, fmt.Errorf("no payment intent %s: %w", id, model.ErrNotFound)
}

func sampleIntents() []model.PaymentIntent {
	return []model.PaymentIntent{
		{
			ID:           "pi_1",
			Created:      model.NewTimestamp(time.Now().Add(-time.Hour)),
			Amount:       500,
			Currency:     "usd",
			Status:       model.StatusSucceeded,
			ReceiptEmail: "buyer@example.com",
		},
		{
			ID:       "pi_2",
			Created:  model.NewTimestamp(time.Now().Add(-48 * time.Hour)),
			Amount:   1200,
			Currency: "eur",
			Status:   model.StatusProcessing,
		},
	}
}

func newTestServer(t *testing.T, provider auth.Provider, source dashboard.Source) *Server {
	t.Helper()

	return newTestServerWithConfig(t, &Config{
		Theme:       view.ThemeDark,
		RefreshTTL:  time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
	}, provider, source)
}

func newTestServerWithConfig(t *testing.T, cfg *Config, provider auth.Provider, source dashboard.Source) *Server {
	t.Helper()

	views, err := view.NewRenderer()
	require.NoError(t, err)

	return NewServer(cfg, 0, Deps{
		Auth:      auth.NewAuthenticator(provider, nil),
		Dashboard: dashboard.NewService(source, time.UTC),
		Views:     views,
	})
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func withSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: accessCookie, Value: token})
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHomeRedirectsToDashboard(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestDashboardWithoutSessionRedirectsToLogin(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginPageWithSessionRedirectsToDashboard(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	rec := serve(s, withSessionCookie(httptest.NewRequest(http.MethodGet, "/login", nil), "valid-token"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLoginPageRendersForm(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/login?mode=signup&theme=light", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `value="signup"`)
	assert.Contains(t, rec.Body.String(), "theme-light")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "deny", rec.Header().Get("X-Frame-Options"))
}

func TestLoginSetsSessionCookies(t *testing.T) {
	provider := newStubProvider()
	provider.signIn = func(email, password string) (*model.Session, error) {
		assert.Equal(t, "merchant@example.com", email)
		assert.Equal(t, "secret123", password)
		return &model.Session{AccessToken: "access", RefreshToken: "refresh", User: merchant}, nil
	}
	s := newTestServer(t, provider, &fakeSource{})

	rec := serve(s, formRequest("/login", url.Values{
		"mode":     {"signin"},
		"email":    {" merchant@example.com "},
		"password": {"secret123"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	access := cookieByName(rec, accessCookie)
	require.NotNil(t, access)
	assert.Equal(t, "access", access.Value)
	assert.True(t, access.HttpOnly)

	refresh := cookieByName(rec, refreshCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh", refresh.Value)
}

func TestLoginShowsProviderError(t *testing.T) {
	provider := newStubProvider()
	provider.signIn = func(email, password string) (*model.Session, error) {
		return nil, &supabase.Error{Status: http.StatusBadRequest, Message: "Invalid login credentials"}
	}
	s := newTestServer(t, provider, &fakeSource{})

	rec := serve(s, formRequest("/login", url.Values{
		"email":    {"merchant@example.com"},
		"password": {"wrong"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid login credentials")
	assert.Contains(t, rec.Body.String(), `value="merchant@example.com"`)
	assert.Nil(t, cookieByName(rec, accessCookie))
}

func TestSignUpWithoutSessionAsksForConfirmation(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	rec := serve(s, formRequest("/login", url.Values{
		"mode":     {"signup"},
		"email":    {"new@example.com"},
		"password": {"secret123"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), confirmationSent)
	assert.Nil(t, cookieByName(rec, accessCookie))
}

func TestSignUpWithSessionRedirects(t *testing.T) {
	provider := newStubProvider()
	provider.signUp = func(email, password string) (*model.Session, error) {
		return &model.Session{AccessToken: "access", User: model.User{ID: "2", Email: email}}, nil
	}
	s := newTestServer(t, provider, &fakeSource{})

	rec := serve(s, formRequest("/login", url.Values{
		"mode":     {"signup"},
		"email":    {"new@example.com"},
		"password": {"secret123"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Nil(t, cookieByName(rec, refreshCookie))
}

func TestLogoutClearsSession(t *testing.T) {
	provider := newStubProvider()
	s := newTestServer(t, provider, &fakeSource{})

	rec := serve(s, withSessionCookie(httptest.NewRequest(http.MethodPost, "/logout", nil), "valid-token"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, []string{"valid-token"}, provider.signedOut)

	access := cookieByName(rec, accessCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge)
}

func TestDashboardRendersIntents(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{intents: sampleIntents()})

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard?selected=pi_1", nil), "valid-token")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "$5.00")
	assert.Contains(t, body, "buyer@example.com")
	assert.Contains(t, body, "merchant@example.com")
	assert.Contains(t, body, "Intent Details")
	assert.Contains(t, body, "pi_1")
}

func TestDashboardFiltersByStatus(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{intents: sampleIntents()})

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard?status=processing", nil), "valid-token")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "selected=pi_2")
	assert.NotContains(t, rec.Body.String(), "selected=pi_1")
}

func TestDashboardFetchErrorRendersErrorPage(t *testing.T) {
	source := &fakeSource{err: &supabase.Error{Status: http.StatusServiceUnavailable, Message: "upstream unavailable"}}
	s := newTestServer(t, newStubProvider(), source)

	rec := serve(s, withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "valid-token"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), dashboardErrTitle)
	assert.Contains(t, rec.Body.String(), "upstream unavailable")
	assert.NotContains(t, rec.Body.String(), "listing payment intents")
}

func TestExpiredSessionIsRefreshed(t *testing.T) {
	provider := newStubProvider()
	provider.tokens["fresh-token"] = merchant
	provider.refreshed["refresh-token"] = &model.Session{AccessToken: "fresh-token", RefreshToken: "next-refresh", User: merchant}
	s := newTestServer(t, provider, &fakeSource{intents: sampleIntents()})

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "stale-token")
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh-token"})
	rec := serve(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(rec, accessCookie)
	require.NotNil(t, access)
	assert.Equal(t, "fresh-token", access.Value)
	refresh := cookieByName(rec, refreshCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "next-refresh", refresh.Value)
}

func TestUnreachableProviderKeepsSession(t *testing.T) {
	provider := newStubProvider()
	provider.userErr = errors.New("dial tcp: connection refused")
	provider.refreshErr = errors.New("dial tcp: connection refused")
	s := newTestServer(t, provider, &fakeSource{intents: sampleIntents()})

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "valid-token")
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh-token"})
	rec := serve(s, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), dashboardErrTitle)
	assert.Contains(t, rec.Body.String(), "connection refused")
	assert.Nil(t, cookieByName(rec, refreshCookie))
	assert.Nil(t, cookieByName(rec, accessCookie))
}

func TestUnreachableProviderAPIReturnsBadGateway(t *testing.T) {
	provider := newStubProvider()
	provider.userErr = &supabase.Error{Status: http.StatusServiceUnavailable, Message: "auth service unavailable"}
	s := newTestServer(t, provider, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := serve(s, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"auth service unavailable"}`, rec.Body.String())
}

func TestRejectedRefreshTokenClearsSession(t *testing.T) {
	provider := newStubProvider()
	provider.refreshErr = &supabase.Error{Status: http.StatusBadRequest, Message: "Invalid Refresh Token"}
	s := newTestServer(t, provider, &fakeSource{})

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "stale-token")
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh-token"})
	rec := serve(s, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	refresh := cookieByName(rec, refreshCookie)
	require.NotNil(t, refresh)
	assert.Negative(t, refresh.MaxAge)
}

func TestSessionRejected(t *testing.T) {
	assert.True(t, sessionRejected(fmt.Errorf("authenticating request: %w", auth.ErrInvalidToken)))
	assert.True(t, sessionRejected(auth.ErrTokenExpired))
	assert.True(t, sessionRejected(&supabase.Error{Status: http.StatusUnauthorized}))
	assert.False(t, sessionRejected(&supabase.Error{Status: http.StatusBadGateway}))
	assert.False(t, sessionRejected(errors.New("dial tcp: connection refused")))
}

func TestFormPostsRejectForeignOrigin(t *testing.T) {
	provider := newStubProvider()
	provider.signIn = func(email, password string) (*model.Session, error) {
		return &model.Session{AccessToken: "valid-token", User: merchant}, nil
	}
	s := newTestServer(t, provider, &fakeSource{})
	values := url.Values{"email": {"merchant@example.com"}, "password": {"secret"}}

	tests := []struct {
		name   string
		header string
		value  string
		status int
	}{
		{name: "foreign origin", header: "Origin", value: "https://evil.example", status: http.StatusForbidden},
		{name: "foreign referer", header: "Referer", value: "https://evil.example/login", status: http.StatusForbidden},
		{name: "opaque origin", header: "Origin", value: "null", status: http.StatusForbidden},
		{name: "same origin", header: "Origin", value: "http://example.com", status: http.StatusSeeOther},
		{name: "same referer", header: "Referer", value: "http://example.com/login", status: http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := formRequest("/login", values)
			req.Header.Set(tt.header, tt.value)
			rec := serve(s, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusForbidden {
				assert.Nil(t, cookieByName(rec, accessCookie))
			}
		})
	}

	req := withSessionCookie(httptest.NewRequest(http.MethodPost, "/logout", nil), "valid-token")
	req.Header.Set("Origin", "https://evil.example")
	rec := serve(s, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, provider.signedOut)
}

func TestFormPostsCheckPublicURL(t *testing.T) {
	s := newTestServerWithConfig(t, &Config{
		Theme:      view.ThemeDark,
		RefreshTTL: time.Hour,
		PublicURL:  "https://pay.example.com",
	}, newStubProvider(), &fakeSource{})

	req := withSessionCookie(httptest.NewRequest(http.MethodPost, "/logout", nil), "valid-token")
	req.Header.Set("Origin", "http://example.com")
	assert.Equal(t, http.StatusForbidden, serve(s, req).Code)

	req = withSessionCookie(httptest.NewRequest(http.MethodPost, "/logout", nil), "valid-token")
	req.Header.Set("Origin", "https://pay.example.com")
	assert.Equal(t, http.StatusSeeOther, serve(s, req).Code)
}

func TestAPIRequiresSession(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	for _, path := range []string{"/api/stats", "/api/payment-intents", "/api/payment-intents/pi_1"} {
		rec := serve(s, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), path)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String(), path)
	}
}

func TestAPIListIntentsWithBearerToken(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{intents: sampleIntents()})

	req := httptest.NewRequest(http.MethodGet, "/api/payment-intents?q=BUYER", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stats   dashboard.Stats `json:"stats"`
		Intents []struct {
			ID string `json:"id"`
		} `json:"intents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(500), resp.Stats.TotalVolume)
	assert.Equal(t, 1, resp.Stats.ActiveIntents)
	require.Len(t, resp.Intents, 1)
	assert.Equal(t, "pi_1", resp.Intents[0].ID)
}

func TestAPIGetIntent(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{intents: sampleIntents()})

	req := httptest.NewRequest(http.MethodGet, "/api/payment-intents/pi_2", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp IntentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Intent)
	assert.Equal(t, "pi_2", resp.Intent.ID)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "pi_2", resp.Detail.ID)
}

func TestAPIGetIntentNotFound(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{intents: sampleIntents()})

	req := httptest.NewRequest(http.MethodGet, "/api/payment-intents/pi_missing", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := serve(s, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"payment intent not found"}`, rec.Body.String())
}

func TestAPIStatsUpstreamError(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := serve(s, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestAPIStats(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{intents: sampleIntents()})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stats.TotalSucceeded)
	assert.Equal(t, 1, resp.Stats.TodaySucceeded)
	require.Len(t, resp.Cards, 4)
	assert.Equal(t, "$5.00", resp.Cards[0].Value)
}

func TestAPITokenRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"email":"a@b.c","password":"nope"}`))
	rec := serve(s, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid login credentials"}`, rec.Body.String())
}

func TestAPITokenReturnsSession(t *testing.T) {
	provider := newStubProvider()
	expires := time.Unix(1700000000, 0)
	provider.signIn = func(email, password string) (*model.Session, error) {
		return &model.Session{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: expires, User: merchant}, nil
	}
	s := newTestServer(t, provider, &fakeSource{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"email":"merchant@example.com","password":"secret123"}`))
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, int64(1700000000), resp.ExpiresAt)
	assert.Equal(t, merchant.Email, resp.User.Email)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthReportsStoreFailure(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})
	s.deps.Ping = func(ctx context.Context) error { return errors.New("down") }

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecoverPanic(t *testing.T) {
	s := newTestServer(t, newStubProvider(), &fakeSource{})
	h := s.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
