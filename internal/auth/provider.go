package auth

import (
	"context"
	"errors"

	"payment-dashboard/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// Provider is an identity provider merchants sign in with.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	// SignUp returns a nil session when the account must be confirmed by
	// e-mail before signing in.
	SignUp(ctx context.Context, email, password string) (*model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*model.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	User(ctx context.Context, accessToken string) (*model.User, error)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*model.Session)
	return s, ok && s != nil
}
