package model

import (
	"time"

	"github.com/google/uuid"
)

type VerificationToken struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userID"`
	Token     []byte    `db:"token" json:"token"`
	Code      string    `db:"code" json:"code"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}

// AuthRequest
// @Description Данные для регистрации первого администратора портала.
type AuthRequest struct {
	Username string `binding:"required" example:"i.petrov"             json:"username"`                                 // Имя сотрудника
	Email    string `binding:"required,email" example:"i.petrov@corp.example" format:"email"      json:"email"`         // Рабочая почта
	Password string `binding:"required" example:"12345678"            format:"password"  json:"password" minLength:"8"` // Пароль
} // @Name AuthRequest

// LoginRequest
// @Description Данные для входа в админ-портал.
type LoginRequest struct {
	Email    string `binding:"required,email" example:"i.petrov@corp.example" format:"email"      json:"email"`         // Рабочая почта
	Password string `binding:"required" example:"12345678"            format:"password"  json:"password" minLength:"8"` // Пароль
} // @Name LoginRequest

// AuthToken
// @Description Токен для подтверждения учётной записи.
type AuthToken struct {
	Token []byte `binding:"required" json:"token"` // Токен для подтверждения учётной записи
} // @Name AuthToken

// AuthResponse
// @Description Ответ на регистрацию первого администратора.
type AuthResponse struct {
	User  *User
	Token []byte `binding:"required" json:"token"` // Токен для подтверждения учётной записи
} // @Name AuthResponse

// ResendRequest
// @Description Запрос на переотправку кода подтверждения.
type ResendRequest struct {
	Email string `binding:"required,email" example:"i.petrov@corp.example" format:"email"      json:"email"` // Рабочая почта
} // @Name ResendRequest

// ConfirmationRequest
// @Description Запрос на подтверждение учётной записи.
type ConfirmationRequest struct {
	Code  string `binding:"required" example:"0228" json:"code"`                        // Код, полученный с почты
	Token string `binding:"required" example:"89as098ga0998=asdg=+afgk==" json:"token"` // Токен, который вернул register/resend-confirmation
} // @Name ConfirmationRequest

// TokenResponse
// @Description Ответ, содержащий access и refresh токены
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`  // Access токен
	RefreshToken string `json:"refreshToken"` // Refresh токен
} // @Name TokenResponse

// RefreshRequest
// @Description Запрос с refresh токеном для клиентов без cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"` // Refresh токен
} // @Name RefreshRequest

// ForgotPasswordRequest
// @Description Запрос на восстановление пароля.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"` // Почта, на которую придёт письмо для восстановления пароля
} // @Name ForgotPasswordRequest

// ResetPasswordRequest
// @Description Запрос на сброс пароля.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`       // Токен, полученный по ссылке из письма
	NewPassword string `json:"newPassword" binding:"required"` // Новый пароль
} // @Name ResetPasswordRequest

// PasswordResetToken
// @Description Токен для восстановления пароля.
type PasswordResetToken struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userID"`
	Token     []byte    `db:"token" json:"token"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
} // @Name PasswordResetToken
