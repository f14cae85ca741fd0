package services

import (
	"context"
	"errors"
	"time"

	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin authentication. The wider employee directory
// is an external collaborator; this service exists only to gate the admin
// endpoints (penalties, system summary).
type AuthService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login validates credentials and returns a signed JWT
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}

// Register creates a new admin account with a hashed password
func (s *AuthService) Register(ctx context.Context, user *models.AdminUser, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = "admin"
	}
	return s.adminRepo.Create(ctx, user)
}
