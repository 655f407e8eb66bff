package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

type SearchService interface {
	Search(ctx context.Context, query string) (*model.SearchResponse, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{
		svc: svc,
	}
}

// Search
// @Summary Поиск по сайту
// @Description Полнотекстовый поиск по страницам и объявлениям с подсветкой совпадений.
// @Tags Search
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} ResponseWithData{data=model.SearchResponse} "Результаты поиска"
// @Failure 400 {object} ResponseWithMessage "Пустой запрос"
// @Failure 500 {object} ResponseWithMessage "Ошибка поиска"
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	var params model.SearchQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	resp, err := h.svc.Search(ctx, params.Q)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrEmptyField) {
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
		Data:   resp,
	})
}
