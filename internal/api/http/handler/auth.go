package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (user *model.User, userToken []byte, err error)
	ResendConfirmation(ctx context.Context, email string) ([]byte, error)
	Confirmation(ctx context.Context, incCode string, incToken []byte) error
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, err error)
}

type AuthHandler struct {
	log             *zap.Logger
	svc             AuthService
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthHandler(log *zap.Logger, svc AuthService, accessTokenTTL, refreshTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		log:             log,
		svc:             svc,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Register
// @Summary Регистрация первого администратора.
// @Description Заводит самую первую учётную запись портала с ролью admin, отправляет 4-х значный код на почту
// @Description и возвращает токен для подтверждения. Когда в системе уже есть администратор, ручка закрыта:
// @Description дальнейшие учётные записи создаёт администратор через POST /user.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body model.AuthRequest true "Данные первого администратора"
// @Success 201 {object} ResponseWithData{data=model.AuthResponse} "Success"
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 409 {object} ResponseWithMessage "User already exists / registration is closed"
// @Failure 500 {object} ResponseWithMessage "Failed to register user"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	user, token, err := h.svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) || errors.Is(err, apperrors.ErrBootstrapCompleted) {
			c.JSON(http.StatusConflict, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data: model.AuthResponse{
			User:  user,
			Token: token,
		},
	})
}

// ResendConfirmation
// @Summary Повторная отправка токена кода подтверждения.
// @Description Генерирует новую пару токен + 4-х значный код, код отправляет на почту,
// @Description возвращает новый токен, старый аннулируется.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body model.ResendRequest true "Данные для повторной отправки кода подтверждения"
// @Success 200 {object} ResponseWithData{data=model.AuthToken} "Success"
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 500 {object} ResponseWithMessage "Failed to resend confirmation"
// @Router /auth/resend-confirmation [post]
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	token, err := h.svc.ResendConfirmation(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserDoesNotExist) {
			c.JSON(http.StatusNotFound, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data: model.AuthToken{
			Token: token,
		},
	})
}

// Confirmation
// @Summary Подтверждение учётной записи.
// @Description Принимает код с почты + временный токен, который вернул handler register/resend-confirmation.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body model.ConfirmationRequest true "Данные для подтверждения пользователя"
// @Success 200 {object} ResponseWithMessage "User confirmed successfully"
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 401 {object} ResponseWithMessage "Invalid verification code/Token has expired"
// @Failure 404 {object} ResponseWithMessage "Token does not exist"
// @Failure 500 {object} ResponseWithMessage "Failed to confirmation user"
// @Router /auth/confirm [post]
func (h *AuthHandler) Confirmation(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	decodedToken, err := base64.StdEncoding.DecodeString(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: "Invalid token format",
		})

		return
	}

	if err := h.svc.Confirmation(ctx, req.Code, decodedToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenDoesNotExist) {
			c.JSON(http.StatusNotFound, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		if errors.Is(err, apperrors.ErrInvalidVerificationCode) {
			c.JSON(http.StatusUnauthorized, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		if errors.Is(err, apperrors.ErrInvalidVerificationToken) {
			c.JSON(http.StatusUnauthorized, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "User confirmed successfully",
	})
}

// Login
// @Summary Вход в админ-портал.
// @Description Принимает почту и пароль, выставляет access и refresh токен в cookie, они автоматически отправляются при каждом запросе к api.
// @Description Вход только для подтверждённых учётных записей.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body model.LoginRequest true "Данные для входа"
// @Success 200 {object} ResponseWithData{data=model.TokenResponse} “Success”
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 401 {object} ResponseWithMessage "Invalid credential/User isn't confirmed"
// @Failure 404 {object} ResponseWithMessage "User does not exist"
// @Failure 500 {object} ResponseWithMessage "Failed to login user"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	accessToken, refreshToken, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserDoesNotExist) {
			c.JSON(http.StatusNotFound, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		if errors.Is(err, apperrors.ErrUserIsNotConfirmed) {
			c.JSON(http.StatusUnauthorized, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	c.SetCookie("access", accessToken, int(h.accessTokenTTL.Seconds()), "/", "", true, true)
	c.SetCookie("refresh", refreshToken, int(h.refreshTokenTTL.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data: model.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

// Logout
// @Summary Выход из админ-портала.
// @Description Сбрасывает access и refresh токены. Для браузера refresh токен автоматически берётся из cookies,
// @Description клиенты без cookie передают его в теле запроса.
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body model.RefreshRequest true "Refresh токен (только для клиентов без cookie)"
// @Success 200 {object} ResponseWithMessage "Logged out"
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 500 {object} ResponseWithMessage "Failed to logout"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	var refreshToken string

	if cookie, err := c.Cookie("refresh"); err == nil {
		refreshToken = cookie
	}

	if refreshToken == "" {
		var req model.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		refreshToken = req.RefreshToken
	}

	if refreshToken == "" {
		h.clearCookies(c)

		c.JSON(http.StatusOK, ResponseWithMessage{
			Status:  StatusSuccess,
			Message: "Logged out",
		})

		return
	}

	if err := h.svc.Logout(ctx, refreshToken); err != nil {
		h.log.Error("Failed to delete refresh token from redis",
			zap.Error(err),
		)
	}

	h.clearCookies(c)

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "Logged out",
	})
}

// Refresh
// @Summary Refresh jwt токенов.
// @Description Получает refresh токен из cookies (клиенты без cookie передают его в теле запроса), проверяет его,
// @Description если он не истёк, то выставляет новые access и refresh токены.
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body model.RefreshRequest true "Refresh токен (только для клиентов без cookie)"
// @Success 200 {object} ResponseWithData{data=model.TokenResponse} “Success”
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 401 {object} ResponseWithMessage "Refresh token expired"
// @Failure 404 {object} ResponseWithMessage "User does not exist"
// @Failure 500 {object} ResponseWithMessage "Failed to refresh user"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var refreshToken string

	if cookie, err := c.Cookie("refresh"); err == nil {
		refreshToken = cookie
	}

	if refreshToken == "" {
		var req model.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		refreshToken = req.RefreshToken
	}

	if refreshToken == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ResponseWithMessage{
			Status:  StatusNotPermitted,
			Message: "Missing refresh token",
		})

		return
	}

	accessToken, refreshToken, err := h.svc.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, ResponseWithMessage{
				Status:  StatusNotPermitted,
				Message: err.Error(),
			})

			return
		}

		if errors.Is(err, apperrors.ErrUserDoesNotExist) {
			c.JSON(http.StatusNotFound, ResponseWithMessage{
				Status:  StatusErr,
				Message: err.Error(),
			})

			return
		}

		c.JSON(http.StatusInternalServerError, ResponseWithMessage{
			Status:  StatusErr,
			Message: err.Error(),
		})

		return
	}

	c.SetCookie("access", accessToken, int(h.accessTokenTTL.Seconds()), "/", "", true, true)
	c.SetCookie("refresh", refreshToken, int(h.refreshTokenTTL.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data: model.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	c.SetCookie("access", "", -1, "/", "", true, true)
	c.SetCookie("refresh", "", -1, "/", "", true, true)
}
