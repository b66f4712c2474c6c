package service

import (
	"crypto/subtle"
	"fmt"

	"linguabird/internal/repository"
)

// AuthService handles password-based access control.
// With an empty password every user is let in.
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// Enabled reports whether a password is required
func (s *AuthService) Enabled() bool {
	return s.botPassword != "" && s.userRepo != nil
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	return s.userRepo.IsAuthorized(userID)
}

// TryAuthorize authorizes the user when password is correct
func (s *AuthService) TryAuthorize(userID int64, password string) (bool, error) {
	if !s.CheckPassword(password) {
		return false, nil
	}
	if err := s.userRepo.AuthorizeUser(userID); err != nil {
		return false, fmt.Errorf("authorize user %d: %w", userID, err)
	}
	return true, nil
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(userID int64) error {
	if s.userRepo == nil {
		return nil
	}
	return s.userRepo.EnsureUserExists(userID)
}
