package model

// Ключи, под которыми claims из JWT кладутся в контекст запроса.
const (
	UserUIDKey       = "user_uid"
	UserEmailKey     = "user_email"
	UserNameKey      = "user_name"
	UserConfirmedKey = "user_confirmed"
	UserRoleKey      = "user_role"
)
