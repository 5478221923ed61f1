package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure. Malformed, expired and
// bad-signature tokens are deliberately indistinguishable to callers so the
// HTTP layer cannot leak which case occurred.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is what a verified bearer token asserts about its holder.
type TokenClaims struct {
	UserId uuid.UUID
	Email  string
}

// TokenManager issues and verifies HS256 bearer tokens. It is pure
// computation: no I/O, safe for concurrent use.
type TokenManager struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenManager(secret string, expiresIn time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiresIn: expiresIn}
}

func (m *TokenManager) Issue(userId uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userId.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	userId, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return &TokenClaims{UserId: userId, Email: email}, nil
}
