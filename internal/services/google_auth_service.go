package services

import (
	"errors"
	"log"

	"todoapp/internal/models"
	"todoapp/internal/repositories"
	"todoapp/internal/utils"
)

var ErrEmailNotRegistered = errors.New("email does not exist")

// OAuthProfileFetcher is satisfied by *utils.GoogleClient.
type OAuthProfileFetcher interface {
	FetchUserInfo(code string) (*utils.GoogleUserInfo, error)
}

// GoogleAuthService signs users in or up from a Google OAuth authorization
// code. Accounts created here are verified from the start and carry no
// password.
type GoogleAuthService interface {
	Login(code string) (*models.Account, error)
	Register(code string) (*models.Account, error)
}

type googleAuthService struct {
	accounts repositories.AccountRepository
	client   OAuthProfileFetcher
}

func NewGoogleAuthService(accounts repositories.AccountRepository, client OAuthProfileFetcher) GoogleAuthService {
	return &googleAuthService{accounts: accounts, client: client}
}

func (s *googleAuthService) Login(code string) (*models.Account, error) {
	info, err := s.client.FetchUserInfo(code)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrEmailNotRegistered
	}
	return account, nil
}

func (s *googleAuthService) Register(code string) (*models.Account, error) {
	info, err := s.client.FetchUserInfo(code)
	if err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	account := &models.Account{
		Name:            info.Name,
		Email:           info.Email,
		AccountVerified: true,
	}
	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}
	log.Printf("[google][register] created verified account id=%d email=%q", account.ID, account.Email)
	return account, nil
}
