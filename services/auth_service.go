package services

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// AuthService handles signup and login.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Signup creates a customer account.
func (s *AuthService) Signup(email, password, name, phone string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewValidation("email is invalid")
	}
	if len(password) < minPasswordLen {
		return nil, NewValidationf("password must be at least %d characters", minPasswordLen)
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, NewValidation("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
		Role:     entity.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the password and issues a token.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if repository.IsNotFound(err) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}
