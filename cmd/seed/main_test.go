package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpsite-back/internal/model"
	"corpsite-back/pkg/cryptobox"
)

func TestFakePage(t *testing.T) {
	page := fakePage(model.PageKindProduct, 2)

	require.Equal(t, model.PageKindProduct, page.Kind)
	require.Equal(t, 2, page.DisplayOrder)
	require.True(t, page.Published)
	require.NotEmpty(t, page.Title)
	require.NotEmpty(t, page.Body)
}

func TestFakeNotice(t *testing.T) {
	pinned := fakeNotice(0)
	plain := fakeNotice(1)

	require.True(t, pinned.Pinned)
	require.False(t, plain.Pinned)
	require.NotEmpty(t, plain.Title)
	require.NotEmpty(t, plain.Body)
}

func TestFakeInquiry(t *testing.T) {
	box, err := cryptobox.New([]byte("seed-test-key"), zap.NewNop())
	require.NoError(t, err)

	secret, err := fakeInquiry(box, 0)
	require.NoError(t, err)
	require.True(t, secret.IsSecret)
	require.NotEmpty(t, secret.EmailCiphertext)
	require.NotEmpty(t, secret.PasswordHash)
	require.True(t, box.VerifyPassword(secretPassword, secret.PasswordHash))

	public, err := fakeInquiry(box, 1)
	require.NoError(t, err)
	require.False(t, public.IsSecret)
	require.Empty(t, public.EmailCiphertext)
	require.Empty(t, public.PasswordHash)
}
