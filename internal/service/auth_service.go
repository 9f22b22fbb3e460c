package service

import (
	"errors"

	"supergp/config"
	"supergp/internal/auth"
	"supergp/internal/domain"
	"supergp/internal/models"
	"supergp/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminExists  = errors.New("admin already exists")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg       *config.Config
	adminRepo *repository.AdminRepository
}

func NewAuthService(cfg *config.Config, adminRepo *repository.AdminRepository) *AuthService {
	return &AuthService{cfg: cfg, adminRepo: adminRepo}
}

func (s *AuthService) Register(email, password string) (*models.Admin, error) {
	_, err := s.adminRepo.GetByEmail(email)
	if err == nil {
		return nil, ErrAdminExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &models.Admin{Email: email, PasswordHash: string(hash)}
	if err := s.adminRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login returns an access token. Credential failures are reported with a
// single error so callers cannot tell a wrong password from an unknown email.
func (s *AuthService) Login(email, password string) (*models.Admin, string, error) {
	a, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	token, err := auth.GenerateAccessToken(&s.cfg.JWT, a.ID, a.Email, domain.RoleAdmin)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}
