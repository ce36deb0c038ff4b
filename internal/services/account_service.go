package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repositories"
	"todoapp/internal/utils"
)

var (
	ErrAccountExists      = errors.New("user already exists")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrAccountNotFound    = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("you have exceeded the maximum number of attempts, please try again after an hour")
	ErrNoVerification     = errors.New("verification code not found")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("password and confirm password do not match")
	ErrResetTokenInvalid  = errors.New("reset password token is invalid or has expired")
	ErrResetEmailFailed   = errors.New("cannot send reset password email")
)

const (
	// an unverified account may hold this many issued codes; trying to
	// register once the limit is reached fails until the lock window passes
	maxStoredAttempts = 4
	attemptLockWindow = time.Hour

	resetTokenTTL = 15 * time.Minute
)

// AccountService drives every account state transition: registration, OTP
// verification, login, forgot/reset password. Session cookies are minted by
// the handlers; this layer only decides whether a transition is allowed.
type AccountService interface {
	Register(req *models.RegisterRequest) error
	VerifyOtp(email, phone string, otp int) (*models.Account, error)
	Login(email, password string) (*models.Account, error)
	ForgotPassword(email string) error
	ResetPassword(rawToken, password, confirmPassword string) error
}

type accountService struct {
	accounts    repositories.AccountRepository
	attempts    repositories.VerificationRepository
	verifier    VerificationService
	emails      EmailService
	auth        AuthService
	frontendURL string
}

func NewAccountService(
	accounts repositories.AccountRepository,
	attempts repositories.VerificationRepository,
	verifier VerificationService,
	emails EmailService,
	auth AuthService,
	frontendURL string,
) AccountService {
	return &accountService{
		accounts:    accounts,
		attempts:    attempts,
		verifier:    verifier,
		emails:      emails,
		auth:        auth,
		frontendURL: frontendURL,
	}
}

// Register creates or refreshes an unverified account and dispatches a fresh
// code. The account mutation is not rolled back if the dispatch fails; the
// user can simply register again.
func (s *accountService) Register(req *models.RegisterRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	phone := strings.TrimSpace(req.Phone)

	existing, err := s.accounts.GetVerifiedByEmailOrPhone(email, phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAccountExists
	}

	account, err := s.accounts.GetUnverifiedByEmailOrPhone(email, phone)
	if err != nil {
		return err
	}

	if account == nil {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		account = &models.Account{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: &hash,
		}
		if phone != "" {
			account.Phone = &phone
		}
		if err := s.accounts.Create(account); err != nil {
			return err
		}
		log.Printf("[account][register] created unverified account id=%d email=%q", account.ID, email)
	} else {
		count, err := s.attempts.Count(account.ID)
		if err != nil {
			return err
		}
		if count > maxStoredAttempts-1 {
			latest, err := s.attempts.Latest(account.ID)
			if err != nil {
				return err
			}
			if latest != nil && time.Since(latest.CreatedAt) < attemptLockWindow {
				log.Printf("[account][register] attempt limit hit id=%d count=%d", account.ID, count)
				return ErrTooManyAttempts
			}
			// the lock window has passed, start a fresh history
			if err := s.attempts.Clear(account.ID); err != nil {
				return err
			}
		}
	}

	code := s.verifier.GenerateCode()
	expiresAt := time.Now().Add(s.verifier.CodeTTL())
	if _, err := s.attempts.Push(account.ID, code, expiresAt); err != nil {
		return err
	}

	accountPhone := phone
	if accountPhone == "" && account.Phone != nil {
		accountPhone = *account.Phone
	}
	return s.verifier.Issue(req.VerificationMethod, code, account.Name, account.Email, accountPhone)
}

// VerifyOtp checks the supplied code against the newest attempt only. Older
// codes are discarded the moment more than one attempt exists.
func (s *accountService) VerifyOtp(email, phone string, otp int) (*models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	phone = strings.TrimSpace(phone)

	verified, err := s.accounts.GetVerifiedByEmailOrPhone(email, phone)
	if err != nil {
		return nil, err
	}
	if verified != nil {
		return nil, ErrAlreadyVerified
	}

	account, err := s.accounts.GetUnverifiedByEmailOrPhone(email, phone)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	count, err := s.attempts.Count(account.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoVerification
	}
	if count > 1 {
		if err := s.attempts.CollapseToLatest(account.ID); err != nil {
			return nil, err
		}
	}

	latest, err := s.attempts.Latest(account.ID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoVerification
	}
	if latest.Code != otp {
		return nil, ErrInvalidOTP
	}
	if time.Now().After(latest.ExpiresAt) {
		return nil, ErrOTPExpired
	}

	if err := s.accounts.MarkVerified(account.ID); err != nil {
		return nil, err
	}
	if err := s.attempts.Clear(account.ID); err != nil {
		return nil, err
	}
	account.AccountVerified = true
	log.Printf("[account][verify] OK id=%d email=%q", account.ID, account.Email)
	return account, nil
}

func (s *accountService) Login(email, password string) (*models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.GetVerifiedByEmail(email)
	if err != nil {
		return nil, err
	}
	if account == nil || account.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(*account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// ForgotPassword stores the hash of a fresh reset token and emails the raw
// token. This is the one flow with compensating rollback: a failed send
// clears the token it just wrote.
func (s *accountService) ForgotPassword(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	account, err := s.accounts.GetVerifiedByEmail(email)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	raw, hashed, err := utils.NewResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.accounts.SetResetToken(account.ID, hashed, expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/resetPassword/%s", s.frontendURL, raw)
	if err := s.emails.SendPasswordResetEmail(account.Email, resetURL); err != nil {
		log.Printf("[account][forgot] reset email failed for id=%d: %v", account.ID, err)
		if clearErr := s.accounts.ClearResetToken(account.ID); clearErr != nil {
			log.Printf("[account][forgot] reset token rollback failed for id=%d: %v", account.ID, clearErr)
		}
		return ErrResetEmailFailed
	}
	return nil
}

func (s *accountService) ResetPassword(rawToken, password, confirmPassword string) error {
	hashed := utils.HashResetToken(rawToken)

	account, err := s.accounts.GetByResetTokenHash(hashed, time.Now())
	if err != nil {
		return err
	}
	if account == nil {
		return ErrResetTokenInvalid
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(account.ID, hash); err != nil {
		return err
	}
	// token is single use
	if err := s.accounts.ClearResetToken(account.ID); err != nil {
		return err
	}
	log.Printf("[account][reset] password updated id=%d", account.ID)
	return nil
}
