package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"payment-dashboard/internal/model"
)

// Auth implements merchant sign-in against GoTrue.
type Auth struct {
	client *Client
	now    func() time.Time
}

func NewAuth(client *Client) *Auth {
	return &Auth{client: client, now: time.Now}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         userResponse `json:"user"`
}

func (a *Auth) session(t tokenResponse) *model.Session {
	expires := time.Unix(t.ExpiresAt, 0)
	if t.ExpiresAt == 0 {
		expires = a.now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return &model.Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    expires,
		User:         model.User{ID: t.User.ID, Email: t.User.Email},
	}
}

func (a *Auth) token(ctx context.Context, grantType string, body any) (*model.Session, error) {
	var resp tokenResponse
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {grantType}},
		body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%s grant returned no access token", grantType)
	}
	return a.session(resp), nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	return a.token(ctx, "password", credentials{Email: email, Password: password})
}

// SignUp registers a merchant. A nil session with a nil error means the
// project requires e-mail confirmation before the first sign-in.
func (a *Auth) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	var resp tokenResponse
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		body:   credentials{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, nil
	}
	return a.session(resp), nil
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	return a.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	return a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		bearer: accessToken,
	}, nil)
}

// User resolves an access token to its owner by asking GoTrue.
func (a *Auth) User(ctx context.Context, accessToken string) (*model.User, error) {
	var resp userResponse
	err := a.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		bearer: accessToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &model.User{ID: resp.ID, Email: resp.Email}, nil
}
