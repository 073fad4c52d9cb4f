package auth

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/model"
)

// Authenticator resolves the tokens a request carries to a merchant,
// refreshing the session once when the access token has expired.
type Authenticator struct {
	provider Provider
	verifier *Verifier
}

// NewAuthenticator verifies tokens locally when verifier is non-nil and asks
// the provider otherwise.
func NewAuthenticator(provider Provider, verifier *Verifier) *Authenticator {
	return &Authenticator{provider: provider, verifier: verifier}
}

func (a *Authenticator) Provider() Provider {
	return a.provider
}

func (a *Authenticator) user(ctx context.Context, accessToken string) (*model.User, error) {
	if a.verifier != nil {
		return a.verifier.Verify(accessToken)
	}
	return a.provider.User(ctx, accessToken)
}

// Authenticate returns the session for the given tokens. The second return
// value is true when the session was refreshed and the caller must persist
// the new tokens.
func (a *Authenticator) Authenticate(ctx context.Context, accessToken, refreshToken string) (*model.Session, bool, error) {
	if accessToken == "" && refreshToken == "" {
		return nil, false, ErrInvalidToken
	}

	if accessToken != "" {
		user, err := a.user(ctx, accessToken)
		if err == nil {
			return &model.Session{AccessToken: accessToken, RefreshToken: refreshToken, User: *user}, false, nil
		}
		if refreshToken == "" || (a.verifier != nil && !errors.Is(err, ErrTokenExpired)) {
			return nil, false, err
		}
		log.WithError(err).Debug("access token rejected, refreshing session")
	}

	session, err := a.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, false, err
	}
	return session, true, nil
}
