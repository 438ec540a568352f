package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/logger"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

// AuthService handles account registration and login
type AuthService struct {
	store  storage.Store
	tokens *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(store storage.Store, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Signup registers a new account and returns it with a signed token.
// The phone number stays unverified until the OTP flow completes.
func (s *AuthService) Signup(input models.SignupInput) (*models.User, string, error) {
	if _, err := s.store.GetUserByEmail(input.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Phone:        input.Phone,
	}
	if _, err := s.store.CreateUser(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("user registered", zap.String("user_id", user.ID))
	return user, token, nil
}

// Login checks credentials and returns the account with a signed token
func (s *AuthService) Login(input models.LoginInput) (*models.User, string, error) {
	user, err := s.store.GetUserByEmail(input.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}
