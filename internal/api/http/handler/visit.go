package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

type VisitService interface {
	Stats(ctx context.Context, params model.VisitStatsQueryParams) (*model.VisitStatsResponse, error)
	Snapshot(ctx context.Context) (*model.VisitSnapshot, error)
}

type VisitHandler struct {
	log *zap.Logger
	svc VisitService
}

func NewVisitHandler(log *zap.Logger, svc VisitService) *VisitHandler {
	return &VisitHandler{
		log: log,
		svc: svc,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type string      `json:"type"` // "snapshot" | "update" | "done" | "error"
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"error,omitempty"`
}

// GetStats
// @Summary Статистика посещаемости за период.
// @Description Возвращает суточные агрегаты посещений между from и to (YYYY-MM-DD, по умолчанию последние 30 дней).
// @Tags Stats
// @Security AccessToken
// @Produce json
// @Param from query string false "Начало периода"
// @Param to query string false "Конец периода"
// @Success 200 {object} ResponseWithData{data=model.VisitStatsResponse} "Success"
// @Failure 400 {object} ResponseWithMessage "Invalid date"
// @Failure 500 {object} ResponseWithMessage "Failed to get stats"
// @Router /stats/visits [get]
func (h *VisitHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	var params model.VisitStatsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	stats, err := h.svc.Stats(ctx, params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrInvalidDate) {
			status = http.StatusBadRequest
		}

		c.JSON(status, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   stats,
	})
}

// StreamStats
// @Summary Живая статистика посещаемости по WebSocket.
// @Description Открывает WS и присылает срез счётчиков при каждом изменении.
// @Tags Stats
// @Security AccessToken
// @Produce application/json
// @Router /stats/ws/visits [get]
func (h *VisitHandler) StreamStats(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// keepalive
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// читаем входящие сообщения, чтобы не завис ping/pong
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	var lastHash string

	send := func(msg wsMessage) bool {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Warn("ws write failed", zap.Error(err))
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteJSON(wsMessage{Type: "done"})
			return
		case <-ticker.C:
			snap, err := h.svc.Snapshot(ctx)
			if err != nil {
				if !send(wsMessage{Type: "error", Err: err.Error()}) {
					return
				}
				continue
			}

			// хэш снапшота, чтобы не слать дубликаты
			raw, _ := json.Marshal(struct {
				Today int `json:"today"`
				Bots  int `json:"bots"`
				Total int `json:"total"`
			}{snap.Today, snap.Bots, snap.Total})
			sum := sha256.Sum256(raw)
			newHash := hex.EncodeToString(sum[:])

			if lastHash == "" {
				if !send(wsMessage{Type: "snapshot", Data: snap}) {
					return
				}
				lastHash = newHash
			} else if newHash != lastHash {
				if !send(wsMessage{Type: "update", Data: snap}) {
					return
				}
				lastHash = newHash
			}

			_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
		}
	}
}
