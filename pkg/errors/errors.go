package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrTooManyRequests    = errors.New("too many requests, please try again later")

	ErrAccountNotFound = errors.New("account not found")
	ErrEmailNotFound   = errors.New("email not found")
	ErrEmailTaken      = errors.New("email is already in use")

	ErrInvalidCode   = errors.New("invalid verification code")
	ErrCodeExpired   = errors.New("verification code expired")
	ErrInvalidOTP    = errors.New("invalid OTP")
	ErrOTPExpired    = errors.New("OTP expired")
	ErrWrongPassword = errors.New("incorrect current password")

	ErrMemberNotFound      = errors.New("team member not found")
	ErrContactMailMissing  = errors.New("admin contact email not found")
	ErrNotificationFailed  = errors.New("failed to send notification email")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
