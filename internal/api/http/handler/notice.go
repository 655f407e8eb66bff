package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

const maxAttachmentSize = 32 << 20 // 32 MiB

type NoticeService interface {
	Create(ctx context.Context, req *model.NoticeCreateRequest) (*model.Notice, error)
	GetByID(ctx context.Context, id uuid.UUID, countView bool) (*model.Notice, error)
	List(ctx context.Context, params model.NoticeQueryParams) (*model.NoticeListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.NoticeUpdateRequest) (*model.Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddAttachment(ctx context.Context, noticeID uuid.UUID, fileName, contentType string, data []byte) (*model.Attachment, error)
	AttachmentURL(ctx context.Context, id uuid.UUID) (string, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type NoticeHandler struct {
	svc NoticeService
}

func NewNoticeHandler(svc NoticeService) *NoticeHandler {
	return &NoticeHandler{
		svc: svc,
	}
}

func noticeErrStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNoticeNotFound), errors.Is(err, apperrors.ErrAttachmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmptyField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateNotice
// @Summary Создать объявление
// @Tags Notices
// @Security AccessToken
// @Accept json
// @Produce json
// @Param input body model.NoticeCreateRequest true "Данные объявления"
// @Success 201 {object} ResponseWithData{data=model.Notice} "Объявление создано"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 500 {object} ResponseWithMessage "Ошибка при создании"
// @Router /notices [post]
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.NoticeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	notice, err := h.svc.Create(ctx, &req)
	if err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data:   notice,
	})
}

// GetNotice
// @Summary Получить объявление
// @Description Возвращает объявление со вложениями и увеличивает счётчик просмотров.
// @Tags Notices
// @Produce json
// @Param notice_id path string true "Notice UUID"
// @Success 200 {object} ResponseWithData{data=model.Notice} "Объявление"
// @Failure 400 {object} ResponseWithMessage "Неверный параметр пути"
// @Failure 404 {object} ResponseWithMessage "Объявление не найдено"
// @Router /notices/{notice_id} [get]
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	ctx := c.Request.Context()

	noticeID, ok := noticeID(c)
	if !ok {
		return
	}

	// просмотр из админки счётчик не трогает
	notice, err := h.svc.GetByID(ctx, noticeID, !isAdminRoute(c))
	if err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   notice,
	})
}

// ListNotices
// @Summary Список объявлений
// @Description Постраничный список, закреплённые объявления первыми.
// @Tags Notices
// @Produce json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} ResponseWithData{data=model.NoticeListResponse} "Страница списка"
// @Failure 500 {object} ResponseWithMessage "Ошибка при получении списка"
// @Router /notices [get]
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	ctx := c.Request.Context()

	var params model.NoticeQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

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

// UpdateNotice
// @Summary Обновить объявление
// @Tags Notices
// @Security AccessToken
// @Accept json
// @Produce json
// @Param notice_id path string true "Notice UUID"
// @Param input body model.NoticeUpdateRequest true "Изменяемые поля"
// @Success 200 {object} ResponseWithData{data=model.Notice} "Объявление обновлено"
// @Failure 400 {object} ResponseWithMessage "Некорректные данные"
// @Failure 404 {object} ResponseWithMessage "Объявление не найдено"
// @Router /notices/{notice_id} [patch]
func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	ctx := c.Request.Context()

	noticeID, ok := noticeID(c)
	if !ok {
		return
	}

	var req model.NoticeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	notice, err := h.svc.Update(ctx, noticeID, &req)
	if err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   notice,
	})
}

// DeleteNotice
// @Summary Удалить объявление
// @Tags Notices
// @Security AccessToken
// @Produce json
// @Param notice_id path string true "Notice UUID"
// @Success 200 {object} ResponseWithMessage "Объявление удалено"
// @Failure 404 {object} ResponseWithMessage "Объявление не найдено"
// @Router /notices/{notice_id} [delete]
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	ctx := c.Request.Context()

	noticeID, ok := noticeID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx, noticeID); err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "Notice deleted",
	})
}

// UploadAttachment
// @Summary Загрузить вложение
// @Description Принимает файл multipart-формы в поле "file" и прикрепляет его к объявлению.
// @Tags Notices
// @Security AccessToken
// @Accept multipart/form-data
// @Produce json
// @Param notice_id path string true "Notice UUID"
// @Param file formData file true "Файл вложения"
// @Success 201 {object} ResponseWithData{data=model.Attachment} "Вложение загружено"
// @Failure 400 {object} ResponseWithMessage "Нет файла или файл слишком большой"
// @Failure 404 {object} ResponseWithMessage "Объявление не найдено"
// @Router /notices/{notice_id}/attachments [post]
func (h *NoticeHandler) UploadAttachment(c *gin.Context) {
	ctx := c.Request.Context()

	noticeID, ok := noticeID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	if fileHeader.Size > maxAttachmentSize {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: "file is too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	att, err := h.svc.AddAttachment(ctx, noticeID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data:   att,
	})
}

// GetAttachmentURL
// @Summary Получить ссылку на вложение
// @Description Возвращает временную presigned-ссылку на скачивание файла.
// @Tags Notices
// @Produce json
// @Param attachment_id path string true "Attachment UUID"
// @Success 200 {object} ResponseWithData{data=model.AttachmentURLResponse} "Ссылка"
// @Failure 404 {object} ResponseWithMessage "Вложение не найдено"
// @Router /notices/attachments/{attachment_id} [get]
func (h *NoticeHandler) GetAttachmentURL(c *gin.Context) {
	ctx := c.Request.Context()

	attID, ok := attachmentID(c)
	if !ok {
		return
	}

	url, err := h.svc.AttachmentURL(ctx, attID)
	if err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   model.AttachmentURLResponse{URL: url},
	})
}

// DeleteAttachment
// @Summary Удалить вложение
// @Tags Notices
// @Security AccessToken
// @Produce json
// @Param attachment_id path string true "Attachment UUID"
// @Success 200 {object} ResponseWithMessage "Вложение удалено"
// @Failure 404 {object} ResponseWithMessage "Вложение не найдено"
// @Router /notices/attachments/{attachment_id} [delete]
func (h *NoticeHandler) DeleteAttachment(c *gin.Context) {
	ctx := c.Request.Context()

	attID, ok := attachmentID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAttachment(ctx, attID); err != nil {
		c.JSON(noticeErrStatus(err), ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "Attachment deleted",
	})
}

func noticeID(c *gin.Context) (uuid.UUID, bool) {
	var uri model.NoticeIDPathParam
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
			Message: "Invalid notice ID format",
		})
		return uuid.Nil, false
	}

	return id, true
}

func attachmentID(c *gin.Context) (uuid.UUID, bool) {
	var uri model.AttachmentIDPathParam
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
			Message: "Invalid attachment ID format",
		})
		return uuid.Nil, false
	}

	return id, true
}
