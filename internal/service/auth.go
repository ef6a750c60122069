package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// ErrInvalidPassword is returned when the submitted credential does not
// match the configured secret. It is the only authentication error kind.
var ErrInvalidPassword = errors.New("invalid password")

// AuthService is the vault's password gate. Each call re-authenticates
// independently; no session or token is ever issued.
type AuthService interface {
	// Authenticate compares the submitted password against the configured
	// secret and returns ErrInvalidPassword on mismatch.
	Authenticate(password string) error
}

type authService struct {
	secret string
}

// NewAuthService constructs an AuthService for the given secret. An empty
// secret is a configuration error: the vault would be either wide open or
// permanently locked, so refuse to start instead.
func NewAuthService(secret string) (AuthService, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth password is required")
	}
	return &authService{secret: secret}, nil
}

func (s *authService) Authenticate(password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.secret)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
