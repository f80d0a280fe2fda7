package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"library-admin/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidCode        = errors.New("invalid verification code")
)

// LoginResult is the outcome of the password step. When Pending is true,
// Token is a short-lived 2FA token and the code step must follow.
type LoginResult struct {
	Token   string
	Pending bool
}

// Staff authenticates the single staff account configured for the interface.
type Staff struct {
	Username     string
	PasswordHash string
	TOTPSecret   string
	Tokens       *JWTManager
}

func NewStaff(cfg *config.Config, tokens *JWTManager) *Staff {
	return &Staff{
		Username:     cfg.Auth.Username,
		PasswordHash: cfg.Auth.PasswordHash,
		TOTPSecret:   cfg.Auth.TOTPSecret,
		Tokens:       tokens,
	}
}

// Enabled reports whether login is required at all.
func (s *Staff) Enabled() bool {
	return s != nil && s.PasswordHash != ""
}

// Login checks username and password.
func (s *Staff) Login(username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := VerifyPassword(s.PasswordHash, password)
	if !userOK || !passOK {
		return LoginResult{}, ErrInvalidCredentials
	}

	if s.TOTPSecret != "" {
		token, err := s.Tokens.GenerateTempToken(s.Username)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Token: token, Pending: true}, nil
	}

	token, err := s.Tokens.GenerateToken(s.Username)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token}, nil
}

// VerifyCode completes a pending login with an authenticator code.
func (s *Staff) VerifyCode(tempToken, code string) (string, error) {
	claims, err := s.Tokens.ValidateTempToken(tempToken)
	if err != nil {
		return "", ErrInvalidCode
	}
	if !VerifyTOTP(strings.TrimSpace(code), s.TOTPSecret) {
		return "", ErrInvalidCode
	}
	return s.Tokens.GenerateToken(claims.Username)
}
