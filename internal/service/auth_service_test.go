package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptia-be/internal/dto"
	"promptia-be/internal/pkg/credentials"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/repository/memory"
)

func newAuthService() (IAuthService, *credentials.TokenManager) {
	tokens := credentials.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(
		memory.NewUserRepository(),
		credentials.NewPasswordHasher(4),
		tokens,
		nil,
		logger.NewNopLogger(),
	), tokens
}

func strPtr(s string) *string { return &s }

func TestRegisterIssuesValidToken(t *testing.T) {
	svc, tokens := newAuthService()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "user@gmail.com",
		Password: "password12345",
		Name:     strPtr("Usuario"),
	})
	require.NoError(t, err)

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, claims.UserId)
	assert.Equal(t, "user@gmail.com", claims.Email)
}

func TestRegisterResponseNeverLeaksPassword(t *testing.T) {
	svc, _ := newAuthService()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "user@gmail.com",
		Password: "password12345",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "Password")
	assert.NotContains(t, string(raw), "hash")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newAuthService()
	req := &dto.RegisterRequest{Email: "user@gmail.com", Password: "password12345"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "El email ya está registrado", appErr.Message)
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "  User@Gmail.com ",
		Password: "password12345",
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@gmail.com",
		Password: "password12345",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", res.User.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "user@gmail.com",
		Password: "password12345",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@gmail.com",
		Password: "password12346",
	})
	_, noSuchUser := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@gmail.com",
		Password: "password12345",
	})

	var errA, errB *serverutils.AppError
	require.ErrorAs(t, wrongPassword, &errA)
	require.ErrorAs(t, noSuchUser, &errB)
	assert.Equal(t, errA.Code, errB.Code)
	assert.Equal(t, errA.Message, errB.Message)
	assert.Equal(t, 401, errA.Code)
}
