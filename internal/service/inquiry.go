package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
	"corpsite-back/pkg/cryptobox"
)

const (
	answerMailSubject = "Your inquiry has been answered"

	answerMailTemplate = `
		<h2>Hello, {{.Author}}!</h2>
		<p>Your inquiry "{{.Title}}" has been answered:</p>
		<blockquote>{{.Answer}}</blockquote>
	`
)

type InquiryRepository interface {
	Create(ctx context.Context, ext repository.RepoExtension, inq *model.Inquiry) error
	GetByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.Inquiry, error)
	Update(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, patch *model.InquiryPatch) (*model.Inquiry, error)
	SetAnswer(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, answer string) (*model.Inquiry, error)
	List(ctx context.Context, ext repository.RepoExtension, params model.InquiryQueryParams) ([]model.Inquiry, int, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
}

// Notifier - внешний транспорт уведомлений. Получает адрес уже открытым
// текстом, шифртекст за границу сервиса не выходит.
type Notifier interface {
	SendHTML(to, subject, htmlTpl string, data any) error
}

// InquiryService - единственное место, где расшифровывается email, и только
// на пути уведомления об ответе.
type InquiryService struct {
	log      *zap.Logger
	repo     InquiryRepository
	box      *cryptobox.CryptoBox
	notifier Notifier
}

func NewInquiryService(log *zap.Logger, repo InquiryRepository, box *cryptobox.CryptoBox, notifier Notifier) *InquiryService {
	return &InquiryService{
		log:      log,
		repo:     repo,
		box:      box,
		notifier: notifier,
	}
}

// CreatePublic создаёт открытое обращение. Email, если указан, шифруется до
// записи в хранилище.
func (s *InquiryService) CreatePublic(ctx context.Context, req *model.InquiryCreateRequest) (*model.InquiryView, error) {
	inq, err := s.buildInquiry(req.Title, req.Content, req.Author, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, nil, inq); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	return s.project(inq, true), nil
}

// CreateSecret создаёт секретное обращение: пароль обязателен и хранится
// только хэшем.
func (s *InquiryService) CreateSecret(ctx context.Context, req *model.SecretInquiryCreateRequest) (*model.InquiryView, error) {
	if strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	inq, err := s.buildInquiry(req.Title, req.Content, req.Author, req.Email)
	if err != nil {
		return nil, err
	}

	hash, err := s.box.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	inq.IsSecret = true
	inq.PasswordHash = hash

	if err := s.repo.Create(ctx, nil, inq); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	return s.project(inq, true), nil
}

// VerifyPassword сверяет пароль-кандидат с хэшем секретного поста.
// Несовпадение - это false, а не ошибка.
func (s *InquiryService) VerifyPassword(ctx context.Context, id uuid.UUID, candidate string) (bool, error) {
	inq, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return false, err
	}

	if !inq.IsSecret {
		return false, apperrors.ErrInquiryNotSecret
	}

	return s.box.VerifyPassword(candidate, inq.PasswordHash), nil
}

// View возвращает проекцию обращения с учётом политики раскрытия.
// verified=true передаётся после успешной проверки пароля либо для
// аутентифицированного администратора.
func (s *InquiryService) View(ctx context.Context, id uuid.UUID, verified bool) (*model.InquiryView, error) {
	inq, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	return s.project(inq, verified), nil
}

// List возвращает страницу списка. Содержимое секретных постов в списке
// всегда скрыто за заглушкой, кроме запроса администратора.
func (s *InquiryService) List(ctx context.Context, params model.InquiryQueryParams, admin bool) (*model.InquiryListResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	inquiries, total, err := s.repo.List(ctx, nil, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	views := make([]model.InquiryView, 0, len(inquiries))
	for i := range inquiries {
		views = append(views, *s.project(&inquiries[i], admin))
	}

	return &model.InquiryListResponse{
		Inquiries: views,
		Total:     total,
	}, nil
}

// AddAnswer сохраняет ответ. Первый ответ переводит is_answered в true и
// фиксирует answered_at, повторные только перезаписывают текст.
func (s *InquiryService) AddAnswer(ctx context.Context, id uuid.UUID, answer string) (*model.InquiryView, error) {
	inq, err := s.addAnswer(ctx, id, answer)
	if err != nil {
		return nil, err
	}

	return s.project(inq, true), nil
}

// AddAnswerWithNotification сохраняет ответ и, если у обращения есть email,
// расшифровывает его внутри сервиса и отправляет письмо. Любая ошибка на пути
// уведомления (расшифровка, доставка) логируется и отражается в итоге, но не
// откатывает и не роняет записанный ответ.
func (s *InquiryService) AddAnswerWithNotification(ctx context.Context, id uuid.UUID, answer string) (*model.InquiryView, model.NotificationOutcome, error) {
	inq, err := s.addAnswer(ctx, id, answer)
	if err != nil {
		return nil, "", err
	}

	outcome := s.notify(inq)

	return s.project(inq, true), outcome, nil
}

// Update - частичное обновление администратором. Отсутствующее поле не
// трогает ни существующий шифртекст, ни существующий хэш.
func (s *InquiryService) Update(ctx context.Context, id uuid.UUID, req *model.InquiryUpdateRequest) (*model.InquiryView, error) {
	current, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	patch := &model.InquiryPatch{
		IsSecret: req.IsSecret,
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title", apperrors.ErrEmptyField)
		}

		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("%w: content", apperrors.ErrEmptyField)
		}

		content := strings.TrimSpace(*req.Content)
		patch.Content = &content
	}

	if req.Author != nil {
		if strings.TrimSpace(*req.Author) == "" {
			return nil, fmt.Errorf("%w: author", apperrors.ErrEmptyField)
		}

		author := strings.TrimSpace(*req.Author)
		patch.Author = &author
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		ciphertext, err := s.box.Encrypt(strings.TrimSpace(*req.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt email: %w", err)
		}

		patch.EmailCiphertext = &ciphertext
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := s.box.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		patch.PasswordHash = hash
	}

	// Перевод открытого поста в секретный без пароля оставил бы секретный
	// пост, который нечем открыть.
	becomesSecret := req.IsSecret != nil && *req.IsSecret && !current.IsSecret
	if becomesSecret && patch.PasswordHash == nil && len(current.PasswordHash) == 0 {
		return nil, apperrors.ErrPasswordRequired
	}

	updated, err := s.repo.Update(ctx, nil, id, patch)
	if err != nil {
		return nil, err
	}

	return s.project(updated, true), nil
}

func (s *InquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, nil, id)
}

func (s *InquiryService) buildInquiry(title, content, author, email string) (*model.Inquiry, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	author = strings.TrimSpace(author)

	switch "" {
	case title:
		return nil, fmt.Errorf("%w: title", apperrors.ErrEmptyField)
	case content:
		return nil, fmt.Errorf("%w: content", apperrors.ErrEmptyField)
	case author:
		return nil, fmt.Errorf("%w: author", apperrors.ErrEmptyField)
	}

	inq := &model.Inquiry{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		Author:  author,
	}

	if email = strings.TrimSpace(email); email != "" {
		ciphertext, err := s.box.Encrypt(email)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt email: %w", err)
		}

		inq.EmailCiphertext = ciphertext
	}

	return inq, nil
}

func (s *InquiryService) addAnswer(ctx context.Context, id uuid.UUID, answer string) (*model.Inquiry, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: answer", apperrors.ErrEmptyField)
	}

	inq, err := s.repo.SetAnswer(ctx, nil, id, answer)
	if err != nil {
		return nil, err
	}

	return inq, nil
}

func (s *InquiryService) notify(inq *model.Inquiry) model.NotificationOutcome {
	if inq.EmailCiphertext == "" {
		return model.NotificationSkipped
	}

	email, err := s.box.Decrypt(inq.EmailCiphertext)
	if err != nil {
		// Шифртекст и ключ в лог не попадают
		s.log.Error("Failed to decrypt inquiry email for notification",
			zap.String("inquiry_id", inq.ID.String()),
			zap.Error(err),
		)

		return model.NotificationFailed
	}

	data := map[string]any{
		"Author": inq.Author,
		"Title":  inq.Title,
		"Answer": derefOrEmpty(inq.Answer),
	}

	if err := s.notifier.SendHTML(email, answerMailSubject, answerMailTemplate, data); err != nil {
		s.log.Error("Failed to send answer notification",
			zap.String("inquiry_id", inq.ID.String()),
			zap.Error(err),
		)

		return model.NotificationFailed
	}

	return model.NotificationSent
}

// project строит проекцию: email и хэш в ней отсутствуют структурно,
// verified управляет только раскрытием content/answer.
func (s *InquiryService) project(inq *model.Inquiry, verified bool) *model.InquiryView {
	vis := Disclose(inq.IsSecret, verified)

	view := &model.InquiryView{
		ID:         inq.ID,
		Title:      inq.Title,
		Content:    inq.Content,
		Author:     inq.Author,
		IsSecret:   inq.IsSecret,
		IsAnswered: inq.IsAnswered,
		CreatedAt:  inq.CreatedAt,
		UpdatedAt:  inq.UpdatedAt,
	}

	if !vis.ContentFull {
		view.Content = RedactedPlaceholder
	}

	if vis.AnswerFull {
		view.Answer = inq.Answer
		view.AnsweredAt = inq.AnsweredAt
	}

	return view
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
