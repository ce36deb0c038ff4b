package models

import "time"

// Account represents a registrant. PasswordHash is nil for accounts
// created through Google OAuth.
type Account struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	PasswordHash    *string `json:"-"`
	Phone           *string `json:"phone,omitempty"`
	AccountVerified bool    `json:"account_verified"`

	// reset-password state, present only while a reset request is outstanding
	ResetTokenHash      *string    `json:"-"` // sha256 of the raw token, never the token itself
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// VerificationAttempt is one issued OTP. Each send is a new row; the
// newest row is the only one that can ever be confirmed.
type VerificationAttempt struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Code      int       `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountReply is the shape returned to clients inside {"user": ...}.
type AccountReply struct {
	ID    int64  `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Account) Reply() *AccountReply {
	return &AccountReply{ID: a.ID, Name: a.Name, Email: a.Email}
}

type RegisterRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	Phone              string `json:"phone"`
	VerificationMethod string `json:"verificationMethod" binding:"required,oneof=email phone"`
}

type VerifyOtpRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	OTP   string `json:"otp" binding:"required,numeric,len=5"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
