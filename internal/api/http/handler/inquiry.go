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

type InquiryService interface {
	CreatePublic(ctx context.Context, req *model.InquiryCreateRequest) (*model.InquiryView, error)
	CreateSecret(ctx context.Context, req *model.SecretInquiryCreateRequest) (*model.InquiryView, error)
	VerifyPassword(ctx context.Context, id uuid.UUID, candidate string) (bool, error)
	View(ctx context.Context, id uuid.UUID, verified bool) (*model.InquiryView, error)
	List(ctx context.Context, params model.InquiryQueryParams, admin bool) (*model.InquiryListResponse, error)
	AddAnswer(ctx context.Context, id uuid.UUID, answer string) (*model.InquiryView, error)
	AddAnswerWithNotification(ctx context.Context, id uuid.UUID, answer string) (*model.InquiryView, model.NotificationOutcome, error)
	Update(ctx context.Context, id uuid.UUID, req *model.InquiryUpdateRequest) (*model.InquiryView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InquiryHandler struct {
	BaseHandler
	svc InquiryService
}

func NewInquiryHandler(svc InquiryService) *InquiryHandler {
	return &InquiryHandler{
		svc: svc,
	}
}

func inquiryErrStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInquiryNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInquiryNotSecret):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrEmptyField), errors.Is(err, apperrors.ErrPasswordRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateInquiry
// @Summary Создать публичное обращение
// @Description Создаёт открытое обращение. Email, если передан, сохраняется в зашифрованном виде.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param input body model.InquiryCreateRequest true "Данные обращения"
// @Success 201 {object} ResponseWithData{data=model.InquiryView} "Обращение создано"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 500 {object} ResponseWithMessage "Ошибка при создании"
// @Router /board/inquiries [post]
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.InquiryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	view, err := h.svc.CreatePublic(ctx, &req)
	if err != nil {
		c.JSON(inquiryErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data:   view,
	})
}

// CreateSecretInquiry
// @Summary Создать секретное обращение
// @Description Создаёт обращение, закрытое паролем. Содержимое видно только после проверки пароля.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param input body model.SecretInquiryCreateRequest true "Данные секретного обращения"
// @Success 201 {object} ResponseWithData{data=model.InquiryView} "Обращение создано"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные или не передан пароль"
// @Failure 500 {object} ResponseWithMessage "Ошибка при создании"
// @Router /board/inquiries/secret [post]
func (h *InquiryHandler) CreateSecretInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.SecretInquiryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	view, err := h.svc.CreateSecret(ctx, &req)
	if err != nil {
		c.JSON(inquiryErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data:   view,
	})
}

// VerifyInquiry
// @Summary Проверить пароль секретного обращения
// @Description Сравнивает пароль с хэшем. При совпадении возвращает полное обращение.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry UUID"
// @Param input body model.InquiryVerifyRequest true "Пароль"
// @Success 200 {object} ResponseWithData{data=model.InquiryVerifyResponse} "Результат проверки"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 404 {object} ResponseWithMessage "Обращение не найдено"
// @Failure 409 {object} ResponseWithMessage "Обращение не является секретным"
// @Router /board/inquiries/{id}/verify [post]
func (h *InquiryHandler) VerifyInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	inquiryID, ok := h.inquiryID(c)
	if !ok {
		return
	}

	var req model.InquiryVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	verified, err := h.svc.VerifyPassword(ctx, inquiryID, req.Password)
	if err != nil {
		c.JSON(inquiryErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	resp := model.InquiryVerifyResponse{Verified: verified}

	if verified {
		view, err := h.svc.View(ctx, inquiryID, true)
		if err != nil {
			c.JSON(inquiryErrStatus(err), ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})
			return
		}

		resp.Inquiry = view
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   resp,
	})
}

// GetInquiry
// @Summary Получить обращение
// @Description Возвращает обращение. Секретное без проверки пароля приходит с заглушкой вместо содержимого.
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry UUID"
// @Success 200 {object} ResponseWithData{data=model.InquiryView} "Обращение"
// @Failure 400 {object} ResponseWithMessage "Неверный параметр пути"
// @Failure 404 {object} ResponseWithMessage "Обращение не найдено"
// @Router /board/inquiries/{id} [get]
func (h *InquiryHandler) GetInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	inquiryID, ok := h.inquiryID(c)
	if !ok {
		return
	}

	view, err := h.svc.View(ctx, inquiryID, isAdminRoute(c))
	if err != nil {
		c.JSON(inquiryErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   view,
	})
}

// ListInquiries
// @Summary Список обращений
// @Description Постраничный список. Секретные обращения для посетителей приходят с заглушкой.
// @Tags Inquiries
// @Produce json
// @Param answered query bool false "Только отвеченные/неотвеченные"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} ResponseWithData{data=model.InquiryListResponse} "Страница списка"
// @Failure 500 {object} ResponseWithMessage "Ошибка при получении списка"
// @Router /board/inquiries [get]
func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	ctx := c.Request.Context()

	var params model.InquiryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	list, err := h.svc.List(ctx, params, isAdminRoute(c))
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

// AnswerInquiry
// @Summary Ответить на обращение
// @Description Сохраняет ответ администратора. При notify=true автору уходит письмо, его судьба видна в поле notification.
// @Tags Inquiries
// @Security AccessToken
// @Accept json
// @Produce json
// @Param id path string true "Inquiry UUID"
// @Param input body model.InquiryAnswerRequest true "Текст ответа"
// @Success 200 {object} ResponseWithData{data=model.InquiryAnswerResponse} "Ответ сохранён"
// @Failure 400 {object} ResponseWithMessage "Пустой ответ"
// @Failure 404 {object} ResponseWithMessage "Обращение не найдено"
// @Failure 500 {object} ResponseWithMessage "Ошибка при сохранении ответа"
// @Router /board/inquiries/{id}/answer [post]
func (h *InquiryHandler) AnswerInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	inquiryID, ok := h.inquiryID(c)
	if !ok {
		return
	}

	var req model.InquiryAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	resp := model.InquiryAnswerResponse{
		Notification: model.NotificationSkipped,
	}

	if req.Notify {
		view, outcome, err := h.svc.AddAnswerWithNotification(ctx, inquiryID, req.Answer)
		if err != nil {
			c.JSON(inquiryErrStatus(err), ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})
			return
		}

		resp.Inquiry = view
		resp.Notification = outcome
	} else {
		view, err := h.svc.AddAnswer(ctx, inquiryID, req.Answer)
		if err != nil {
			c.JSON(inquiryErrStatus(err), ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})
			return
		}

		resp.Inquiry = view
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   resp,
	})
}

// UpdateInquiry
// @Summary Обновить обращение
// @Description Частичное обновление. Новый email перешифровывается, новый пароль перехэшируется. Перевод в секретные без пароля отклоняется.
// @Tags Inquiries
// @Security AccessToken
// @Accept json
// @Produce json
// @Param id path string true "Inquiry UUID"
// @Param input body model.InquiryUpdateRequest true "Изменяемые поля"
// @Success 200 {object} ResponseWithData{data=model.InquiryView} "Обращение обновлено"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 404 {object} ResponseWithMessage "Обращение не найдено"
// @Failure 500 {object} ResponseWithMessage "Ошибка при обновлении"
// @Router /board/inquiries/{id} [patch]
func (h *InquiryHandler) UpdateInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	inquiryID, ok := h.inquiryID(c)
	if !ok {
		return
	}

	var req model.InquiryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	view, err := h.svc.Update(ctx, inquiryID, &req)
	if err != nil {
		c.JSON(inquiryErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   view,
	})
}

// DeleteInquiry
// @Summary Удалить обращение
// @Tags Inquiries
// @Security AccessToken
// @Produce json
// @Param id path string true "Inquiry UUID"
// @Success 200 {object} ResponseWithMessage "Обращение удалено"
// @Failure 404 {object} ResponseWithMessage "Обращение не найдено"
// @Failure 500 {object} ResponseWithMessage "Ошибка при удалении"
// @Router /board/inquiries/{id} [delete]
func (h *InquiryHandler) DeleteInquiry(c *gin.Context) {
	ctx := c.Request.Context()

	inquiryID, ok := h.inquiryID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx, inquiryID); err != nil {
		c.JSON(inquiryErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "Inquiry deleted",
	})
}

func (h *InquiryHandler) inquiryID(c *gin.Context) (uuid.UUID, bool) {
	var uri model.InquiryIDPathParam
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
			Message: "Invalid inquiry ID format",
		})
		return uuid.Nil, false
	}

	return id, true
}
