package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
)

func TestSignUpAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	signUp, err := svc.SignUp(ctx, models.SignUpRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", signUp.Status)
	assert.NotEmpty(t, signUp.UserID)

	login, err := svc.Login(ctx, models.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, signUp.UserID, login.UserID)
	assert.NotEmpty(t, login.Token)
	assert.Greater(t, login.ExpiresIn, 0)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, models.SignUpRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, models.SignUpRequest{
		Email:    "alice@example.com",
		Password: "different456",
		Name:     "Imposter",
	})
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, models.SignUpRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
}
