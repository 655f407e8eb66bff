package model

import (
	"time"

	"github.com/google/uuid"
)

// VisitEvent публикуется в Kafka через outbox при каждом просмотре публичной страницы.
type VisitEvent struct {
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Referer   string    `json:"referer,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Visit обогащённая запись о посещении после обработки события.
type Visit struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Path        string    `db:"path" json:"path"`
	IP          string    `db:"ip" json:"ip"`
	UserAgent   string    `db:"user_agent" json:"userAgent"`
	Referer     string    `db:"referer" json:"referer,omitempty"`
	CountryCode string    `db:"country_code" json:"countryCode,omitempty"`
	ASN         int       `db:"asn" json:"asn,omitempty"`
	IsBot       bool      `db:"is_bot" json:"isBot"`
	VisitedAt   time.Time `db:"visited_at" json:"visitedAt"`
}

// VisitDayStats
// @Description Суточный агрегат посещаемости.
type VisitDayStats struct {
	Day        time.Time `db:"day" json:"day" swaggertype:"string" format:"date"`
	Total      int       `db:"total" json:"total"`
	Bots       int       `db:"bots" json:"bots"`
	UniqueIPs  int       `db:"unique_ips" json:"uniqueIps"`
} // @Name VisitDayStats

// VisitStatsResponse
// @Description Статистика посещаемости за период.
type VisitStatsResponse struct {
	From  time.Time       `json:"from" swaggertype:"string" format:"date"`
	To    time.Time       `json:"to" swaggertype:"string" format:"date"`
	Days  []VisitDayStats `json:"days"`
	Total int             `json:"total"`
} // @Name VisitStatsResponse

// VisitSnapshot мгновенный срез для живой трансляции по WebSocket.
type VisitSnapshot struct {
	Today     int       `json:"today"`
	Bots      int       `json:"bots"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VisitStatsQueryParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}
