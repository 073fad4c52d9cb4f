package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"payment-dashboard/internal/model"
)

const refreshKind = "refresh"

// Claims matches the access tokens Supabase issues, plus a kind marker for
// locally issued refresh tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Kind  string `json:"kind,omitempty"`
	jwt.StandardClaims
}

// Verifier signs and checks HS256 tokens with a shared secret.
type Verifier struct {
	key []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{key: []byte(secret)}
}

func (v *Verifier) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify checks an access token and returns its owner.
func (v *Verifier) Verify(raw string) (*model.User, error) {
	claims, err := v.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.Kind == refreshKind {
		return nil, ErrInvalidToken
	}
	return &model.User{ID: claims.Subject, Email: claims.Email}, nil
}

func (v *Verifier) verifyRefresh(raw string) (*Claims, error) {
	claims, err := v.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.Kind != refreshKind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *Verifier) issue(user model.User, kind string, expiresAt, now time.Time) (string, error) {
	claims := Claims{
		Email: user.Email,
		Role:  "authenticated",
		Kind:  kind,
		StandardClaims: jwt.StandardClaims{
			Audience:  "authenticated",
			Subject:   user.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
