package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidSession = errors.New("invalid or expired session token")

const sessionTokenTTL = time.Hour

// SessionClaims is the payload carried by the session cookie.
type SessionClaims struct {
	AccountID int64  `json:"account_id"`
	EmailID   string `json:"email_id"`
	jwt.RegisteredClaims
}

// AuthService owns password hashing and session token signing. The signing
// key is injected so tests can supply their own.
type AuthService interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) error
	GenerateToken(accountID int64, email string) (string, error)
	ParseToken(tokenStr string) (*SessionClaims, error)
}

type authService struct {
	jwtKey []byte
}

func NewAuthService(jwtKey []byte) AuthService {
	return &authService{jwtKey: jwtKey}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *authService) GenerateToken(accountID int64, email string) (string, error) {
	claims := &SessionClaims{
		AccountID: accountID,
		EmailID:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *authService) ParseToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
