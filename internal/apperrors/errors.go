package apperrors

import (
	"errors"
)

var (
	ErrShutdown = errors.New("shutdown error")

	ErrUserAlreadyExists        = errors.New("user already exists")
	ErrUserDoesNotExist         = errors.New("user does not exist")
	ErrTokenDoesNotExist        = errors.New("token does not exist")
	ErrInvalidVerificationCode  = errors.New("invalid verification code")
	ErrInvalidVerificationToken = errors.New("token has expired")
	ErrUserIsNotConfirmed       = errors.New("user isn't confirmed")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrRefreshTokenExpired      = errors.New("refresh token expired")
	ErrBootstrapCompleted       = errors.New("registration is closed, ask an administrator to create an account")
	ErrInvalidRole              = errors.New("unknown role")

	ErrContextValueDoesNotExist = errors.New("context value does not exist")
	ErrContextValueInvalidType  = errors.New("invalid context value type")

	ErrEmptyField       = errors.New("required field is empty")
	ErrPasswordRequired = errors.New("password is required for a secret post")

	ErrInquiryNotFound  = errors.New("inquiry does not exist")
	ErrInquiryNotSecret = errors.New("inquiry is not secret")

	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	ErrDuplicateMessage = errors.New("message already processed")

	ErrPageNotFound       = errors.New("page does not exist")
	ErrNoticeNotFound     = errors.New("notice does not exist")
	ErrAttachmentNotFound = errors.New("attachment does not exist")
)
