package model

import (
	"time"

	"github.com/google/uuid"
)

// Роли сотрудников админ-портала. Контентом и обращениями управляют обе роли,
// учётные записи заводит и удаляет только администратор.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User
// @Description Учётная запись сотрудника админ-портала.
type User struct {
	ID             uuid.UUID `binding:"required,uuid" db:"id"                   example:"b4b03119-1290-44bc-b599-6a5e91d6611f"                    json:"id"`        // ID сотрудника
	Username       string    `db:"username"             example:"i.petrov"             json:"username"`                                                             // Имя сотрудника
	Email          string    `binding:"required,email" db:"email"                example:"i.petrov@corp.example"   json:"email"`                                    // Рабочая почта
	HashedPassword []byte    `db:"password"             json:"-"                       swaggerignore:"true"`                                                        // Хэш пароля
	Confirmed      bool      `binding:"required" db:"confirmed"            example:"true"                 json:"confirmed"`                                         // Подтверждена ли учётная запись
	Deleted        bool      `binding:"required" db:"deleted"              example:"false"                json:"deleted"`                                           // Удалена ли учётная запись
	Blocked        bool      `binding:"required" db:"blocked"              example:"false"                json:"blocked"`                                           // Заблокирована ли учётная запись
	Role           string    `binding:"required" db:"role"                 example:"manager"              json:"role"`                                              // Роль сотрудника
	CreatedAt      time.Time `binding:"required" db:"created_at"           example:"2006-01-02T15:04:05Z" format:"date-time" json:"createdAt" swaggertype:"string"` // Timestamp создания учётной записи
	UpdatedAt      time.Time `binding:"required" db:"updated_at"           example:"2006-01-02T15:04:05Z" format:"date-time" json:"updatedAt" swaggertype:"string"` // Timestamp последнего обновления
} // @Name User

type UserIDPathParam struct {
	ID string `uri:"user_id" binding:"required,uuid" example:"b4b03119-1290-44bc-b599-6a5e91d6611f"`
}

// UserCreateRequest
// @Description Запрос администратора на создание учётной записи сотрудника.
type UserCreateRequest struct {
	Username string `binding:"required" example:"i.petrov" json:"username"`                                      // Имя сотрудника
	Email    string `binding:"required,email" example:"i.petrov@corp.example" format:"email" json:"email"`       // Рабочая почта
	Password string `binding:"required" example:"12345678" format:"password" json:"password" minLength:"8"`      // Начальный пароль
	Role     string `binding:"required,oneof=admin manager" enums:"admin,manager" example:"manager" json:"role"` // Роль сотрудника
} // @Name UserCreateRequest
