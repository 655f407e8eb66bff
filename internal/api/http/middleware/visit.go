package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"corpsite-back/internal/model"
)

const recordTimeout = 2 * time.Second

type VisitRecorder interface {
	RecordVisit(ctx context.Context, event model.VisitEvent) error
}

// RecordVisits фиксирует просмотры публичных страниц. Запись идёт в outbox
// уже после ответа клиенту, ошибка учёта не влияет на сам запрос.
func RecordVisits(log *zap.Logger, recorder VisitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" || c.Writer.Status() >= 400 {
			return
		}

		// Админка и служебные маршруты в статистику не попадают.
		if strings.Contains(c.FullPath(), "/docs/") || strings.Contains(c.FullPath(), "/admin/") {
			return
		}

		event := model.VisitEvent{
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Referer:   c.GetHeader("Referer"),
			Timestamp: time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := recorder.RecordVisit(ctx, event); err != nil {
			log.Warn("Failed to record visit", zap.String("path", event.Path), zap.Error(err))
		}
	}
}
