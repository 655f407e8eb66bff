package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
	"corpsite-back/pkg/cryptobox"
)

// fakeInquiryRepo - InquiryRepository в памяти, повторяет семантику
// SQL-репозитория: COALESCE для answered_at, not found для отсутствующих id.
type fakeInquiryRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*model.Inquiry
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{records: make(map[uuid.UUID]*model.Inquiry)}
}

func (f *fakeInquiryRepo) Create(_ context.Context, _ repository.RepoExtension, inq *model.Inquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	inq.CreatedAt = now
	inq.UpdatedAt = now

	clone := *inq
	f.records[inq.ID] = &clone

	return nil
}

func (f *fakeInquiryRepo) GetByID(_ context.Context, _ repository.RepoExtension, id uuid.UUID) (*model.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inq, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrInquiryNotFound
	}

	clone := *inq

	return &clone, nil
}

func (f *fakeInquiryRepo) Update(_ context.Context, _ repository.RepoExtension, id uuid.UUID, patch *model.InquiryPatch) (*model.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inq, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrInquiryNotFound
	}

	if patch.Title != nil {
		inq.Title = *patch.Title
	}
	if patch.Content != nil {
		inq.Content = *patch.Content
	}
	if patch.Author != nil {
		inq.Author = *patch.Author
	}
	if patch.EmailCiphertext != nil {
		inq.EmailCiphertext = *patch.EmailCiphertext
	}
	if patch.IsSecret != nil {
		inq.IsSecret = *patch.IsSecret
	}
	if patch.PasswordHash != nil {
		inq.PasswordHash = patch.PasswordHash
	}

	inq.UpdatedAt = time.Now()

	clone := *inq

	return &clone, nil
}

func (f *fakeInquiryRepo) SetAnswer(_ context.Context, _ repository.RepoExtension, id uuid.UUID, answer string) (*model.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inq, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrInquiryNotFound
	}

	inq.Answer = &answer
	inq.IsAnswered = true

	if inq.AnsweredAt == nil {
		now := time.Now()
		inq.AnsweredAt = &now
	}

	inq.UpdatedAt = time.Now()

	clone := *inq

	return &clone, nil
}

func (f *fakeInquiryRepo) List(_ context.Context, _ repository.RepoExtension, _ model.InquiryQueryParams) ([]model.Inquiry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Inquiry, 0, len(f.records))
	for _, inq := range f.records {
		out = append(out, *inq)
	}

	return out, len(out), nil
}

func (f *fakeInquiryRepo) Delete(_ context.Context, _ repository.RepoExtension, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[id]; !ok {
		return apperrors.ErrInquiryNotFound
	}

	delete(f.records, id)

	return nil
}

func (f *fakeInquiryRepo) stored(t *testing.T, id uuid.UUID) *model.Inquiry {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	inq, ok := f.records[id]
	require.True(t, ok)

	clone := *inq

	return &clone
}

// recordingNotifier запоминает отправленные письма; может имитировать
// отказ транспорта.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	subject string
}

func (n *recordingNotifier) SendHTML(to, subject, _ string, _ any) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.fail {
		return errors.New("smtp unavailable")
	}

	n.sent = append(n.sent, sentMail{to: to, subject: subject})

	return nil
}

func newTestService(t *testing.T) (*InquiryService, *fakeInquiryRepo, *recordingNotifier) {
	t.Helper()

	box, err := cryptobox.New([]byte("unit-test-encryption-key"), zap.NewNop())
	require.NoError(t, err)

	repo := newFakeInquiryRepo()
	notifier := &recordingNotifier{}

	return NewInquiryService(zap.NewNop(), repo, box, notifier), repo, notifier
}

func TestCreatePublic_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name string
		req  model.InquiryCreateRequest
	}{
		{"empty title", model.InquiryCreateRequest{Title: "", Content: "x", Author: "y"}},
		{"whitespace title", model.InquiryCreateRequest{Title: "   ", Content: "x", Author: "y"}},
		{"empty content", model.InquiryCreateRequest{Title: "x", Content: "", Author: "y"}},
		{"empty author", model.InquiryCreateRequest{Title: "x", Content: "y", Author: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePublic(context.Background(), &tt.req)
			assert.ErrorIs(t, err, apperrors.ErrEmptyField)
		})
	}
}

func TestCreateSecret_RequiresPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateSecret(context.Background(), &model.SecretInquiryCreateRequest{
		Title: "x", Content: "y", Author: "z", Password: "",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)

	_, err = svc.CreateSecret(context.Background(), &model.SecretInquiryCreateRequest{
		Title: "", Content: "x", Author: "y", Password: "z",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmptyField)
}

func TestCreateSecret_EncryptsAndHashes(t *testing.T) {
	svc, repo, _ := newTestService(t)

	view, err := svc.CreateSecret(context.Background(), &model.SecretInquiryCreateRequest{
		Title: "Q1", Content: "help", Author: "Kim", Email: "kim@example.com", Password: "pw1234",
	})
	require.NoError(t, err)
	assert.True(t, view.IsSecret)

	stored := repo.stored(t, view.ID)
	assert.NotEqual(t, "kim@example.com", stored.EmailCiphertext)
	assert.NotEmpty(t, stored.EmailCiphertext)
	assert.NotEqual(t, []byte("pw1234"), stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestVerifyPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	secret, err := svc.CreateSecret(ctx, &model.SecretInquiryCreateRequest{
		Title: "Q1", Content: "help", Author: "Kim", Password: "pw1234",
	})
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, secret.ID, "pw1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, secret.ID, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.VerifyPassword(ctx, uuid.New(), "pw1234")
	assert.ErrorIs(t, err, apperrors.ErrInquiryNotFound)

	public, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "open", Content: "hello", Author: "Lee",
	})
	require.NoError(t, err)

	_, err = svc.VerifyPassword(ctx, public.ID, "anything")
	assert.ErrorIs(t, err, apperrors.ErrInquiryNotSecret)
}

func TestView_SecretDisclosure(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	secret, err := svc.CreateSecret(ctx, &model.SecretInquiryCreateRequest{
		Title: "Q1", Content: "the real content", Author: "Kim", Password: "pw1234",
	})
	require.NoError(t, err)

	_, err = svc.AddAnswer(ctx, secret.ID, "the real answer")
	require.NoError(t, err)

	// Без проверки пароля: заглушка, ответ скрыт даже у отвеченного поста
	view, err := svc.View(ctx, secret.ID, false)
	require.NoError(t, err)
	assert.Equal(t, RedactedPlaceholder, view.Content)
	assert.Nil(t, view.Answer)
	assert.Nil(t, view.AnsweredAt)
	assert.True(t, view.IsAnswered)

	// После проверки: всё открыто
	view, err = svc.View(ctx, secret.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "the real content", view.Content)
	require.NotNil(t, view.Answer)
	assert.Equal(t, "the real answer", *view.Answer)
	assert.NotNil(t, view.AnsweredAt)
}

func TestView_PublicIgnoresVerified(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	public, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "open", Content: "visible to everyone", Author: "Lee",
	})
	require.NoError(t, err)

	for _, verified := range []bool{false, true} {
		view, err := svc.View(ctx, public.ID, verified)
		require.NoError(t, err)
		assert.Equal(t, "visible to everyone", view.Content)
	}
}

func TestView_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.View(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, apperrors.ErrInquiryNotFound)
}

func TestAddAnswer_FirstTimestampIsKept(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "q", Content: "c", Author: "a",
	})
	require.NoError(t, err)

	first, err := svc.AddAnswer(ctx, inq.ID, "first")
	require.NoError(t, err)
	assert.True(t, first.IsAnswered)
	require.NotNil(t, first.AnsweredAt)

	firstAnsweredAt := *first.AnsweredAt

	time.Sleep(10 * time.Millisecond)

	second, err := svc.AddAnswer(ctx, inq.ID, "second")
	require.NoError(t, err)
	require.NotNil(t, second.Answer)
	assert.Equal(t, "second", *second.Answer)
	assert.True(t, second.IsAnswered)

	// answered_at фиксирует именно первый ответ
	require.NotNil(t, second.AnsweredAt)
	assert.Equal(t, firstAnsweredAt, *second.AnsweredAt)
	assert.Equal(t, firstAnsweredAt, *repo.stored(t, inq.ID).AnsweredAt)
}

func TestAddAnswer_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "q", Content: "c", Author: "a",
	})
	require.NoError(t, err)

	_, err = svc.AddAnswer(ctx, inq.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyField)

	_, err = svc.AddAnswer(ctx, uuid.New(), "answer")
	assert.ErrorIs(t, err, apperrors.ErrInquiryNotFound)
}

func TestAddAnswerWithNotification_SendsPlaintextEmail(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreateSecret(ctx, &model.SecretInquiryCreateRequest{
		Title: "Q1", Content: "help", Author: "Kim", Email: "kim@example.com", Password: "pw1234",
	})
	require.NoError(t, err)

	view, outcome, err := svc.AddAnswerWithNotification(ctx, inq.ID, "answer text")
	require.NoError(t, err)
	assert.True(t, view.IsAnswered)
	assert.Equal(t, model.NotificationSent, outcome)

	// Получатель - расшифрованный адрес, не шифртекст
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "kim@example.com", notifier.sent[0].to)
}

func TestAddAnswerWithNotification_NoEmail(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "q", Content: "c", Author: "a",
	})
	require.NoError(t, err)

	view, outcome, err := svc.AddAnswerWithNotification(ctx, inq.ID, "answer")
	require.NoError(t, err)
	assert.True(t, view.IsAnswered)
	assert.Equal(t, model.NotificationSkipped, outcome)
	assert.Empty(t, notifier.sent)
}

func TestAddAnswerWithNotification_DeliveryFailureDoesNotFailAnswer(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "q", Content: "c", Author: "a", Email: "a@example.com",
	})
	require.NoError(t, err)

	notifier.fail = true

	view, outcome, err := svc.AddAnswerWithNotification(ctx, inq.ID, "answer")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationFailed, outcome)

	// Ответ сохранён несмотря на отказ транспорта
	assert.True(t, view.IsAnswered)
	assert.True(t, repo.stored(t, inq.ID).IsAnswered)
}

func TestAddAnswerWithNotification_CorruptCiphertext(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "q", Content: "c", Author: "a", Email: "a@example.com",
	})
	require.NoError(t, err)

	// Портим шифртекст в хранилище: расшифровка должна провалиться,
	// но ответ всё равно записывается
	repo.mu.Lock()
	repo.records[inq.ID].EmailCiphertext = "garbage"
	repo.mu.Unlock()

	view, outcome, err := svc.AddAnswerWithNotification(ctx, inq.ID, "answer")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationFailed, outcome)
	assert.True(t, view.IsAnswered)
	assert.Empty(t, notifier.sent)
}

func TestUpdate_PartialKeepsCiphertextAndHash(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreateSecret(ctx, &model.SecretInquiryCreateRequest{
		Title: "Q1", Content: "help", Author: "Kim", Email: "kim@example.com", Password: "pw1234",
	})
	require.NoError(t, err)

	before := repo.stored(t, inq.ID)

	newTitle := "Updated title"
	_, err = svc.Update(ctx, inq.ID, &model.InquiryUpdateRequest{Title: &newTitle})
	require.NoError(t, err)

	after := repo.stored(t, inq.ID)
	assert.Equal(t, "Updated title", after.Title)
	assert.Equal(t, before.EmailCiphertext, after.EmailCiphertext)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	ok, err := svc.VerifyPassword(ctx, inq.ID, "pw1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_NewEmailAndPasswordAreReplaced(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	inq, err := svc.CreateSecret(ctx, &model.SecretInquiryCreateRequest{
		Title: "Q1", Content: "help", Author: "Kim", Email: "kim@example.com", Password: "pw1234",
	})
	require.NoError(t, err)

	before := repo.stored(t, inq.ID)

	newEmail := "lee@example.com"
	newPassword := "pw5678"
	_, err = svc.Update(ctx, inq.ID, &model.InquiryUpdateRequest{Email: &newEmail, Password: &newPassword})
	require.NoError(t, err)

	after := repo.stored(t, inq.ID)
	assert.NotEqual(t, before.EmailCiphertext, after.EmailCiphertext)
	assert.NotEqual(t, "lee@example.com", after.EmailCiphertext)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	ok, err := svc.VerifyPassword(ctx, inq.ID, "pw5678")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, inq.ID, "pw1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate_SecretToggleWithoutPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	public, err := svc.CreatePublic(ctx, &model.InquiryCreateRequest{
		Title: "q", Content: "c", Author: "a",
	})
	require.NoError(t, err)

	secret := true
	_, err = svc.Update(ctx, public.ID, &model.InquiryUpdateRequest{IsSecret: &secret})
	assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)

	// С паролем перевод в секретный проходит
	password := "pw0000"
	view, err := svc.Update(ctx, public.ID, &model.InquiryUpdateRequest{IsSecret: &secret, Password: &password})
	require.NoError(t, err)
	assert.True(t, view.IsSecret)

	ok, err := svc.VerifyPassword(ctx, public.ID, "pw0000")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEndToEnd_SecretInquiryScenario(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSecret(ctx, &model.SecretInquiryCreateRequest{
		Title:    "Q1",
		Content:  "help",
		Author:   "Kim",
		Email:    "kim@example.com",
		Password: "pw1234",
	})
	require.NoError(t, err)
	require.True(t, created.IsSecret)

	stored := repo.stored(t, created.ID)
	assert.NotEqual(t, "kim@example.com", stored.EmailCiphertext)
	assert.NotEqual(t, []byte("pw1234"), stored.PasswordHash)

	ok, err := svc.VerifyPassword(ctx, created.ID, "pw1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, created.ID, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	view, err := svc.View(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, RedactedPlaceholder, view.Content)

	answered, outcome, err := svc.AddAnswerWithNotification(ctx, created.ID, "answer text")
	require.NoError(t, err)
	assert.True(t, answered.IsAnswered)
	assert.Equal(t, model.NotificationSent, outcome)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "kim@example.com", notifier.sent[0].to)
}
