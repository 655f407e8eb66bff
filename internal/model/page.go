package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PageKindProduct  = "product"
	PageKindSolution = "solution"
	PageKindHistory  = "history"
	PageKindVideo    = "video"
	PageKindBanner   = "banner"
)

// PageKinds - все допустимые типы страниц.
var PageKinds = []string{PageKindProduct, PageKindSolution, PageKindHistory, PageKindVideo, PageKindBanner}

// Page
// @Description Контентная страница сайта (продукт, решение, история, видео, баннер).
type Page struct {
	ID           uuid.UUID `binding:"required" db:"id" example:"b4b03119-1290-44bc-b599-6a5e91d6611f" json:"id"` // ID страницы (UUID)
	Kind         string    `binding:"required" db:"kind" example:"product" json:"kind"`                          // Тип страницы: product|solution|history|video|banner
	Title        string    `binding:"required" db:"title" example:"Наш продукт" json:"title"`                    // Заголовок
	Body         string    `db:"body" json:"body,omitempty"`                                                     // Содержимое страницы
	MediaURL     string    `db:"media_url" json:"mediaUrl,omitempty"`                                            // Ссылка на изображение или видео
	DisplayOrder int       `db:"display_order" json:"displayOrder"`                                              // Порядок вывода в списке
	Published    bool      `db:"published" json:"published"`                                                     // Видна ли страница посетителям
	CreatedAt    time.Time `binding:"required" db:"created_at" example:"2006-01-02T15:04:05Z" format:"date-time" json:"createdAt" swaggertype:"string"`
	UpdatedAt    time.Time `binding:"required" db:"updated_at" example:"2006-01-02T15:04:05Z" format:"date-time" json:"updatedAt" swaggertype:"string"`
} // @Name Page

// PageCreateRequest
// @Description Данные, передаваемые для создания страницы.
type PageCreateRequest struct {
	Kind         string `binding:"required,oneof=product solution history video banner" json:"kind" example:"product"`
	Title        string `binding:"required" json:"title" example:"Наш продукт"`
	Body         string `json:"body,omitempty"`
	MediaURL     string `json:"mediaUrl,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
	Published    bool   `json:"published"`
} // @Name PageCreateRequest

// PageUpdateRequest
// @Description Модель обновления страницы.
// @Description Обновляются только переданные поля.
type PageUpdateRequest struct {
	Title        *string `json:"title,omitempty"`
	Body         *string `json:"body,omitempty"`
	MediaURL     *string `json:"mediaUrl,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
	Published    *bool   `json:"published,omitempty"`
} // @Name PageUpdateRequest

type PageListResponse struct {
	Pages []Page `json:"pages"`
	Total int    `json:"total"`
} // @Name PageListResponse

type PageQueryParams struct {
	Kind          string `form:"kind"`
	PublishedOnly bool   `form:"-"`
}

type PageIDPathParam struct {
	ID string `uri:"page_id" binding:"required,uuid" example:"b4b03119-1290-44bc-b599-6a5e91d6611f"`
}
