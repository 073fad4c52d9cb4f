package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"payment-dashboard/internal/database"
	"payment-dashboard/internal/model"
)

// UserStore is the part of the database the local provider needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, password string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

type Notifier interface {
	SendWelcomeEmail(destinationEmail string) error
}

const minPasswordLength = 6

// Local is a self-hosted identity provider backed by the users table.
type Local struct {
	users      UserStore
	verifier   *Verifier
	notifier   Notifier
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewLocal builds a provider that signs tokens with verifier's key. notifier
// may be nil.
func NewLocal(users UserStore, verifier *Verifier, notifier Notifier, accessTTL, refreshTTL time.Duration) *Local {
	return &Local{
		users:      users,
		verifier:   verifier,
		notifier:   notifier,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (l *Local) newSession(user model.User) (*model.Session, error) {
	now := l.now()
	user.Password = ""

	expiresAt := now.Add(l.accessTTL)
	access, err := l.verifier.issue(user, "", expiresAt, now)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}
	refresh, err := l.verifier.issue(user, refreshKind, now.Add(l.refreshTTL), now)
	if err != nil {
		return nil, fmt.Errorf("issuing refresh token: %w", err)
	}

	return &model.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	user, err := l.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return l.newSession(user)
}

func (l *Local) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password should be at least %d characters", minPasswordLength)
	}

	user, err := l.users.CreateUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, database.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if l.notifier != nil {
		if err := l.notifier.SendWelcomeEmail(user.Email); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("sending welcome email")
		}
	}

	return l.newSession(user)
}

func (l *Local) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	claims, err := l.verifier.verifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := l.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return l.newSession(user)
}

// SignOut is a no-op: local tokens are stateless and expire on their own.
func (l *Local) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func (l *Local) User(ctx context.Context, accessToken string) (*model.User, error) {
	return l.verifier.Verify(accessToken)
}
