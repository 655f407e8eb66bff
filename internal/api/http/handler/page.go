package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

type PageService interface {
	Create(ctx context.Context, req *model.PageCreateRequest) (*model.Page, error)
	GetByID(ctx context.Context, id uuid.UUID, publishedOnly bool) (*model.Page, error)
	List(ctx context.Context, params model.PageQueryParams) (*model.PageListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.PageUpdateRequest) (*model.Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PageHandler struct {
	svc PageService
}

func NewPageHandler(svc PageService) *PageHandler {
	return &PageHandler{
		svc: svc,
	}
}

func pageErrStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmptyField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreatePage
// @Summary Создать страницу
// @Description Создаёт контентную страницу сайта.
// @Tags Pages
// @Security AccessToken
// @Accept json
// @Produce json
// @Param input body model.PageCreateRequest true "Данные страницы"
// @Success 201 {object} ResponseWithData{data=model.Page} "Страница создана"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 500 {object} ResponseWithMessage "Ошибка при создании"
// @Router /pages [post]
func (h *PageHandler) CreatePage(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.PageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	page, err := h.svc.Create(ctx, &req)
	if err != nil {
		c.JSON(pageErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data:   page,
	})
}

// GetPage
// @Summary Получить страницу
// @Tags Pages
// @Produce json
// @Param page_id path string true "Page UUID"
// @Success 200 {object} ResponseWithData{data=model.Page} "Страница"
// @Failure 400 {object} ResponseWithMessage "Неверный параметр пути"
// @Failure 404 {object} ResponseWithMessage "Страница не найдена"
// @Router /pages/{page_id} [get]
func (h *PageHandler) GetPage(c *gin.Context) {
	ctx := c.Request.Context()

	pageID, ok := pageID(c)
	if !ok {
		return
	}

	// посетителям отдаются только опубликованные страницы
	page, err := h.svc.GetByID(ctx, pageID, !isAdminRoute(c))
	if err != nil {
		c.JSON(pageErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   page,
	})
}

// ListPages
// @Summary Список страниц
// @Description Список страниц, опционально по типу. Посетители видят только опубликованные.
// @Tags Pages
// @Produce json
// @Param kind query string false "Тип страницы"
// @Success 200 {object} ResponseWithData{data=model.PageListResponse} "Список страниц"
// @Failure 500 {object} ResponseWithMessage "Ошибка при получении списка"
// @Router /pages [get]
func (h *PageHandler) ListPages(c *gin.Context) {
	ctx := c.Request.Context()

	var params model.PageQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	params.PublishedOnly = !isAdminRoute(c)

	list, err := h.svc.List(ctx, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   list,
	})
}

// UpdatePage
// @Summary Обновить страницу
// @Tags Pages
// @Security AccessToken
// @Accept json
// @Produce json
// @Param page_id path string true "Page UUID"
// @Param input body model.PageUpdateRequest true "Изменяемые поля"
// @Success 200 {object} ResponseWithData{data=model.Page} "Страница обновлена"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 404 {object} ResponseWithMessage "Страница не найдена"
// @Router /pages/{page_id} [patch]
func (h *PageHandler) UpdatePage(c *gin.Context) {
	ctx := c.Request.Context()

	pageID, ok := pageID(c)
	if !ok {
		return
	}

	var req model.PageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	page, err := h.svc.Update(ctx, pageID, &req)
	if err != nil {
		c.JSON(pageErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   page,
	})
}

// DeletePage
// @Summary Удалить страницу
// @Tags Pages
// @Security AccessToken
// @Produce json
// @Param page_id path string true "Page UUID"
// @Success 200 {object} ResponseWithMessage "Страница удалена"
// @Failure 404 {object} ResponseWithMessage "Страница не найдена"
// @Router /pages/{page_id} [delete]
func (h *PageHandler) DeletePage(c *gin.Context) {
	ctx := c.Request.Context()

	pageID, ok := pageID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx, pageID); err != nil {
		c.JSON(pageErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "Page deleted",
	})
}

func pageID(c *gin.Context) (uuid.UUID, bool) {
	var uri model.PageIDPathParam
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: "Invalid page ID format",
		})
		return uuid.Nil, false
	}

	return id, true
}

// isAdminRoute: роль в контексте есть только после JWT middleware.
func isAdminRoute(c *gin.Context) bool {
	roleVal, exists := c.Get(model.UserRoleKey)
	if !exists {
		return false
	}

	role, ok := roleVal.(string)
	if !ok {
		return false
	}

	return role == model.RoleAdmin || role == model.RoleManager
}
