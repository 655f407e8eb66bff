package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
)

type fakeAuthRepo struct {
	token     *model.VerificationToken
	confirmed []uuid.UUID
}

func (r *fakeAuthRepo) Pool() *pgxpool.Pool { return nil }

func (r *fakeAuthRepo) UpdateUserAsConfirmed(_ context.Context, _ repository.RepoExtension, userID uuid.UUID) error {
	r.confirmed = append(r.confirmed, userID)

	return nil
}

func (r *fakeAuthRepo) InsertVerificationToken(_ context.Context, _ repository.RepoExtension, token *model.VerificationToken) error {
	r.token = token

	return nil
}

func (r *fakeAuthRepo) SelectVerificationToken(_ context.Context, _ repository.RepoExtension, token []byte) (*model.VerificationToken, error) {
	if r.token == nil {
		return nil, apperrors.ErrTokenDoesNotExist
	}

	return r.token, nil
}

func (r *fakeAuthRepo) DeleteVerificationTokenByUserID(_ context.Context, _ repository.RepoExtension, _ uuid.UUID) error {
	r.token = nil

	return nil
}

type fakeUserRepo struct {
	admins   int64
	inserted []*model.User
}

func (r *fakeUserRepo) Pool() *pgxpool.Pool { return nil }

func (r *fakeUserRepo) InsertUser(_ context.Context, _ repository.RepoExtension, user *model.User) (*model.User, error) {
	r.inserted = append(r.inserted, user)

	return user, nil
}

func (r *fakeUserRepo) InsertStaffUser(_ context.Context, _ repository.RepoExtension, user *model.User) (*model.User, error) {
	user.Confirmed = true
	r.inserted = append(r.inserted, user)

	return user, nil
}

func (r *fakeUserRepo) CountAdmins(_ context.Context, _ repository.RepoExtension) (int64, error) {
	return r.admins, nil
}

func (r *fakeUserRepo) SelectUserByID(_ context.Context, _ repository.RepoExtension, _ uuid.UUID) (*model.User, error) {
	return nil, apperrors.ErrUserDoesNotExist
}

func (r *fakeUserRepo) SelectUserByEmail(_ context.Context, _ repository.RepoExtension, _ string) (*model.User, error) {
	return nil, apperrors.ErrUserDoesNotExist
}

func (r *fakeUserRepo) Delete(_ context.Context, _ repository.RepoExtension, _ uuid.UUID) error {
	return nil
}

func (r *fakeUserRepo) Block(_ context.Context, _ repository.RepoExtension, _ uuid.UUID) error {
	return nil
}

func (r *fakeUserRepo) InsertPasswordResetToken(_ context.Context, _ repository.RepoExtension, _ uuid.UUID, _ []byte, _ time.Time) error {
	return nil
}

func (r *fakeUserRepo) SelectUserByResetToken(_ context.Context, _ repository.RepoExtension, _ []byte) (*model.User, error) {
	return nil, apperrors.ErrUserDoesNotExist
}

func (r *fakeUserRepo) DeletePasswordResetToken(_ context.Context, _ repository.RepoExtension, _ []byte) error {
	return nil
}

func (r *fakeUserRepo) UpdateUserPassword(_ context.Context, _ repository.RepoExtension, _ uuid.UUID, _ []byte) error {
	return nil
}

type fakeAuthMailer struct {
	sent int
}

func (m *fakeAuthMailer) SendHTML(_, _, _ string, _ any) error {
	m.sent++

	return nil
}

// Регистрация открыта только пока в системе нет ни одного администратора.
func TestRegisterClosedAfterBootstrap(t *testing.T) {
	authRepo := &fakeAuthRepo{}
	userRepo := &fakeUserRepo{admins: 1}

	svc := NewAuthService(zap.NewNop(), nil, nil, authRepo, userRepo, &fakeAuthMailer{}, nil, time.Minute, time.Hour)

	_, _, err := svc.Register(context.Background(), "i.petrov", "i.petrov@corp.example", "12345678")

	require.ErrorIs(t, err, apperrors.ErrBootstrapCompleted)
	assert.Empty(t, userRepo.inserted)
}

func TestConfirmationRejectsWrongCode(t *testing.T) {
	userID := uuid.New()
	authRepo := &fakeAuthRepo{token: &model.VerificationToken{
		UserID:    userID,
		Token:     []byte("tok"),
		Code:      "0228",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}}

	svc := NewAuthService(zap.NewNop(), nil, nil, authRepo, &fakeUserRepo{}, &fakeAuthMailer{}, nil, time.Minute, time.Hour)

	err := svc.Confirmation(context.Background(), "0000", []byte("tok"))

	require.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
	assert.Empty(t, authRepo.confirmed)
}

func TestConfirmationRejectsExpiredToken(t *testing.T) {
	authRepo := &fakeAuthRepo{token: &model.VerificationToken{
		UserID:    uuid.New(),
		Token:     []byte("tok"),
		Code:      "0228",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}}

	svc := NewAuthService(zap.NewNop(), nil, nil, authRepo, &fakeUserRepo{}, &fakeAuthMailer{}, nil, time.Minute, time.Hour)

	err := svc.Confirmation(context.Background(), "0228", []byte("tok"))

	require.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)
}

func TestConfirmationMarksUser(t *testing.T) {
	userID := uuid.New()
	authRepo := &fakeAuthRepo{token: &model.VerificationToken{
		UserID:    userID,
		Token:     []byte("tok"),
		Code:      "0228",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}}

	svc := NewAuthService(zap.NewNop(), nil, nil, authRepo, &fakeUserRepo{}, &fakeAuthMailer{}, nil, time.Minute, time.Hour)

	require.NoError(t, svc.Confirmation(context.Background(), "0228", []byte("tok")))
	assert.Equal(t, []uuid.UUID{userID}, authRepo.confirmed)
}
