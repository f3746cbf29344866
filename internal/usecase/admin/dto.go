package admin

import (
	"time"

	domainAdmin "github.com/umeshkhanal/rumooz/internal/domain/admin"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse tells the client where the verification code goes. It never carries a token.
type LoginResponse struct {
	Email string `json:"email"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric_code"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ChangeEmailRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	OTP      string `json:"otp" validate:"required,numeric_code"`
}

type ChangeContactMailRequest struct {
	ContactMail string `json:"contact_mail" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required"`
	OTP         string `json:"otp" validate:"required,numeric_code"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,max=72"`
	OTP             string `json:"otp" validate:"required,numeric_code"`
}

type ProfileResponse struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	ContactMail *string `json:"contact_mail"`
}

// Identity is what a verified session token resolves to.
type Identity struct {
	AccountID uint
	Username  string
}

// Seed describes the account created on first boot or by the createadmin command.
type Seed struct {
	Username    string
	Email       string
	Password    string
	ContactMail string
}

func ToProfileResponse(a *domainAdmin.Account) *ProfileResponse {
	return &ProfileResponse{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		ContactMail: a.ContactMail,
	}
}
