package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, &fakeAuthMailer{})

	_, err := svc.CreateUser(context.Background(), "i.petrov", "i.petrov@corp.example", "12345678", "superuser")

	require.ErrorIs(t, err, apperrors.ErrInvalidRole)
	assert.Empty(t, repo.inserted)
}

func TestCreateUserInsertsConfirmedStaff(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, &fakeAuthMailer{})

	user, err := svc.CreateUser(context.Background(), "i.petrov", "i.petrov@corp.example", "12345678", model.RoleManager)
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, model.RoleManager, user.Role)
	assert.True(t, user.Confirmed)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.HashedPassword, []byte("12345678")))
}
