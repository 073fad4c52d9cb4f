package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"payment-dashboard/internal/database"
	"payment-dashboard/internal/model"
)

type memoryUsers struct {
	byEmail map[string]model.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]model.User{}}
}

func (m *memoryUsers) CreateUser(ctx context.Context, email, password string) (model.User, error) {
	if _, ok := m.byEmail[email]; ok {
		return model.User{}, database.ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{ID: strconv.Itoa(len(m.byEmail) + 1), Email: email, Password: string(hash)}
	m.byEmail[email] = user
	return model.User{ID: user.ID, Email: email}, nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (model.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

type recordingNotifier struct {
	sent []string
	err  error
}

func (r *recordingNotifier) SendWelcomeEmail(destinationEmail string) error {
	r.sent = append(r.sent, destinationEmail)
	return r.err
}

func newTestLocal(notifier Notifier) (*Local, *memoryUsers) {
	users := newMemoryUsers()
	return NewLocal(users, NewVerifier("secret"), notifier, time.Hour, 24*time.Hour), users
}

func TestLocalSignUpAndSignIn(t *testing.T) {
	notifier := &recordingNotifier{}
	local, _ := newTestLocal(notifier)
	ctx := context.Background()

	session, err := local.SignUp(ctx, " Merchant@Example.com ", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "merchant@example.com", session.User.Email)
	assert.Empty(t, session.User.Password)
	assert.Equal(t, []string{"merchant@example.com"}, notifier.sent)

	session, err = local.SignIn(ctx, "merchant@example.com", "hunter22")
	require.NoError(t, err)

	user, err := local.User(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "merchant@example.com", user.Email)
}

func TestLocalSignUpNotifierFailureIsNotFatal(t *testing.T) {
	local, _ := newTestLocal(&recordingNotifier{err: errors.New("sendgrid down")})

	session, err := local.SignUp(context.Background(), "a@example.com", "hunter22")

	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
}

func TestLocalSignUpValidation(t *testing.T) {
	local, _ := newTestLocal(nil)
	ctx := context.Background()

	_, err := local.SignUp(ctx, "not-an-email", "hunter22")
	assert.EqualError(t, err, "a valid email address is required")

	_, err = local.SignUp(ctx, "a@example.com", "123")
	assert.EqualError(t, err, "password should be at least 6 characters")

	_, err = local.SignUp(ctx, "a@example.com", "hunter22")
	require.NoError(t, err)
	_, err = local.SignUp(ctx, "a@example.com", "hunter22")
	assert.ErrorIs(t, err, database.ErrUserExists)
}

func TestLocalSignInInvalidCredentials(t *testing.T) {
	local, _ := newTestLocal(nil)
	ctx := context.Background()

	_, err := local.SignUp(ctx, "a@example.com", "hunter22")
	require.NoError(t, err)

	_, err = local.SignIn(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = local.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocalRefresh(t *testing.T) {
	local, _ := newTestLocal(nil)
	ctx := context.Background()

	session, err := local.SignUp(ctx, "a@example.com", "hunter22")
	require.NoError(t, err)

	refreshed, err := local.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshed.User.ID)

	_, err = local.Refresh(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access tokens cannot be used to refresh")
}
