package model

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry - модель вопроса с публичной страницы "1:1 문의" (обращение клиента).
// Email хранится только в зашифрованном виде, пароль секретного поста - только хэшем.
// Наружу ни то, ни другое не отдаётся, см. InquiryView.
type Inquiry struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Content         string     `db:"content" json:"content"`
	Author          string     `db:"author" json:"author"`
	EmailCiphertext string     `db:"email_ciphertext" json:"-"`
	IsSecret        bool       `db:"is_secret" json:"isSecret"`
	PasswordHash    []byte     `db:"password_hash" json:"-"`
	IsAnswered      bool       `db:"is_answered" json:"isAnswered"`
	Answer          *string    `db:"answer" json:"answer,omitempty"`
	AnsweredAt      *time.Time `db:"answered_at" json:"answeredAt,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// InquiryView - проекция, которую получает вызывающая сторона.
// Структурно не содержит ни email, ни хэша пароля, независимо от verified.
type InquiryView struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	IsSecret   bool       `json:"isSecret"`
	IsAnswered bool       `json:"isAnswered"`
	Answer     *string    `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// InquiryCreateRequest
// @Description Данные публичного (не секретного) обращения.
type InquiryCreateRequest struct {
	Title   string `binding:"required" example:"Question about the product" json:"title"`   // Заголовок обращения
	Content string `binding:"required" example:"How do I request a quote?"  json:"content"` // Текст обращения
	Author  string `binding:"required" example:"Kim"                        json:"author"`  // Имя автора
	Email   string `binding:"omitempty,email" example:"kim@example.com"     json:"email"`   // Контактный email (опционально)
} // @Name InquiryCreateRequest

// SecretInquiryCreateRequest
// @Description Данные секретного обращения: содержимое закрывается паролем.
type SecretInquiryCreateRequest struct {
	Title    string `binding:"required" example:"Private question"      json:"title"`    // Заголовок обращения
	Content  string `binding:"required" example:"Contract details..."   json:"content"`  // Текст обращения
	Author   string `binding:"required" example:"Kim"                   json:"author"`   // Имя автора
	Email    string `binding:"omitempty,email" example:"kim@example.com" json:"email"`   // Контактный email (опционально)
	Password string `binding:"required" example:"pw1234"                json:"password"` // Пароль для просмотра
} // @Name SecretInquiryCreateRequest

// InquiryUpdateRequest
// @Description Частичное обновление обращения администратором.
// @Description Email перешифровывается, а пароль перехэшируется только если передано новое значение.
type InquiryUpdateRequest struct {
	Title    *string `json:"title,omitempty"`    // Новый заголовок
	Content  *string `json:"content,omitempty"`  // Новый текст
	Author   *string `json:"author,omitempty"`   // Новое имя автора
	Email    *string `json:"email,omitempty"`    // Новый email открытым текстом
	IsSecret *bool   `json:"isSecret,omitempty"` // Новый флаг секретности
	Password *string `json:"password,omitempty"` // Новый пароль открытым текстом
} // @Name InquiryUpdateRequest

// InquiryPatch - то, что реально уходит в хранилище при частичном обновлении:
// сервис уже превратил email в шифртекст, а пароль в хэш. nil = не трогать поле.
type InquiryPatch struct {
	Title           *string
	Content         *string
	Author          *string
	EmailCiphertext *string
	IsSecret        *bool
	PasswordHash    []byte
}

// InquiryAnswerRequest
// @Description Ответ администратора на обращение.
type InquiryAnswerRequest struct {
	Answer string `binding:"required" example:"Thanks for reaching out..." json:"answer"` // Текст ответа
	Notify bool   `json:"notify" example:"true"`                                          // Отправить ли письмо автору
} // @Name InquiryAnswerRequest

// InquiryVerifyRequest
// @Description Проверка пароля секретного обращения.
type InquiryVerifyRequest struct {
	Password string `binding:"required" example:"pw1234" json:"password"` // Пароль-кандидат
} // @Name InquiryVerifyRequest

// InquiryVerifyResponse
// @Description Результат проверки пароля. При совпадении сразу отдаётся полное обращение.
type InquiryVerifyResponse struct {
	Verified bool         `json:"verified" example:"true"` // Совпал ли пароль
	Inquiry  *InquiryView `json:"inquiry,omitempty"`       // Полное обращение при verified=true
} // @Name InquiryVerifyResponse

// NotificationOutcome - явный итог уведомления автору: ответ сохранён в любом
// случае, а вызывающая сторона видит, что случилось с письмом.
type NotificationOutcome string

const (
	NotificationSkipped NotificationOutcome = "skipped" // у обращения нет email
	NotificationSent    NotificationOutcome = "sent"
	NotificationFailed  NotificationOutcome = "failed" // ошибка расшифровки или доставки
)

// InquiryAnswerResponse
// @Description Сохранённый ответ плюс итог уведомления.
type InquiryAnswerResponse struct {
	Inquiry      *InquiryView        `json:"inquiry"`
	Notification NotificationOutcome `json:"notification" example:"sent"` // skipped|sent|failed
} // @Name InquiryAnswerResponse

// InquiryListResponse
// @Description Страница списка обращений.
type InquiryListResponse struct {
	Inquiries []InquiryView `json:"inquiries"`
	Total     int           `json:"total"`
} // @Name InquiryListResponse

// InquiryQueryParams - параметры пагинации списка обращений.
type InquiryQueryParams struct {
	Answered *bool `form:"answered"`
	Limit    int   `form:"limit" example:"20"`
	Offset   int   `form:"offset" example:"0"`
}

type InquiryIDPathParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
