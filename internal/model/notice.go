package model

import (
	"time"

	"github.com/google/uuid"
)

// Notice
// @Description Объявление на доске объявлений компании.
type Notice struct {
	ID        uuid.UUID `binding:"required" db:"id" example:"b4b03119-1290-44bc-b599-6a5e91d6611f" json:"id"` // ID объявления (UUID)
	Title     string    `binding:"required" db:"title" example:"Важное объявление" json:"title"`              // Заголовок
	Body      string    `db:"body" json:"body,omitempty"`                                                     // Текст объявления
	Pinned    bool      `db:"pinned" json:"pinned"`                                                           // Закреплено ли объявление наверху
	ViewCount int       `db:"view_count" json:"viewCount"`                                                    // Счётчик просмотров
	CreatedAt time.Time `binding:"required" db:"created_at" example:"2006-01-02T15:04:05Z" format:"date-time" json:"createdAt" swaggertype:"string"`
	UpdatedAt time.Time `binding:"required" db:"updated_at" example:"2006-01-02T15:04:05Z" format:"date-time" json:"updatedAt" swaggertype:"string"`

	Attachments []Attachment `json:"attachments,omitempty"` // Вложения объявления
} // @Name Notice

// Attachment
// @Description Метаданные вложения объявления. Сам файл лежит в объектном хранилище.
type Attachment struct {
	ID          uuid.UUID `binding:"required" db:"id" json:"id"`
	NoticeID    uuid.UUID `db:"notice_id" json:"noticeId"`
	FileName    string    `db:"file_name" json:"fileName" example:"report.pdf"`
	ContentType string    `db:"content_type" json:"contentType" example:"application/pdf"`
	Size        int64     `db:"size" json:"size" example:"102400"`
	StorageKey  string    `db:"storage_key" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt" swaggertype:"string" format:"date-time"`
} // @Name Attachment

// NoticeCreateRequest
// @Description Данные, передаваемые для создания объявления.
type NoticeCreateRequest struct {
	Title  string `binding:"required" json:"title" example:"Важное объявление"`
	Body   string `json:"body,omitempty"`
	Pinned bool   `json:"pinned"`
} // @Name NoticeCreateRequest

// NoticeUpdateRequest
// @Description Модель обновления объявления. Обновляются только переданные поля.
type NoticeUpdateRequest struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
} // @Name NoticeUpdateRequest

type NoticeListResponse struct {
	Notices []Notice `json:"notices"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
} // @Name NoticeListResponse

// AttachmentURLResponse
// @Description Временная ссылка на скачивание вложения.
type AttachmentURLResponse struct {
	URL string `json:"url"`
} // @Name AttachmentURLResponse

type NoticeQueryParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type NoticeIDPathParam struct {
	ID string `uri:"notice_id" binding:"required,uuid" example:"b4b03119-1290-44bc-b599-6a5e91d6611f"`
}

type AttachmentIDPathParam struct {
	ID string `uri:"attachment_id" binding:"required,uuid" example:"b4b03119-1290-44bc-b599-6a5e91d6611f"`
}
