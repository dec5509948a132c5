package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("invalid credentials")
	ErrInvalidToken   = errors.New("invalid admin token")
)

type Config struct {
	Secret       string
	PasswordHash string
	TokenTTL     time.Duration
}

// ConfigFromEnv reads admin auth settings. With no ADMIN_PASSWORD_HASH set the
// management API stays locked: Login always fails.
func ConfigFromEnv() Config {
	ttl := time.Hour
	return Config{
		Secret:       os.Getenv("AUTH_SECRET"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		TokenTTL:     ttl,
	}
}

// Service authenticates the operator and issues short-lived HS256 tokens for
// the provisioning endpoints. Tenant callers never touch this path.
type Service struct {
	secret       []byte
	passwordHash []byte
	ttl          time.Duration
}

func NewService(cfg Config) *Service {
	return &Service{
		secret:       []byte(cfg.Secret),
		passwordHash: []byte(cfg.PasswordHash),
		ttl:          cfg.TokenTTL,
	}
}

// Login verifies the admin password against the configured bcrypt hash and
// returns a signed token.
func (s *Service) Login(password string) (string, error) {
	if len(s.passwordHash) == 0 || len(s.secret) == 0 {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}

// Verify checks a previously issued admin token.
func (s *Service) Verify(token string) error {
	if token == "" || len(s.secret) == 0 {
		return ErrInvalidToken
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

// VerifyRequest checks the bearer token on a management request.
func (s *Service) VerifyRequest(r *http.Request) error {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ErrInvalidToken
	}
	return s.Verify(strings.TrimSpace(parts[1]))
}
