package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SearchKindPage   = "page"
	SearchKindNotice = "notice"
)

// SearchDocument документ поискового индекса. Туда зеркалируются страницы и объявления.
type SearchDocument struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"` // page|notice
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResult
// @Description Один результат поиска по сайту с подсветкой совпадений.
type SearchResult struct {
	Document  SearchDocument      `json:"document"`
	Score     float64             `json:"score"`
	Highlight map[string][]string `json:"highlight,omitempty"`
} // @Name SearchResult

// SearchResponse
// @Description Результаты поиска по сайту.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
} // @Name SearchResponse

type SearchParams struct {
	Q    string
	From int
	Size int
}

type SearchQueryParams struct {
	Q string `binding:"required" form:"q"`
}
