package services

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

// AdminClaims is the signed admin session.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuthService checks the admin secret and issues/validates sessions.
// The secret is compared on the server; there is no lockout.
type AdminAuthService struct {
	password     string
	passwordHash []byte
	signingKey   []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAdminAuthService prefers passwordHash (bcrypt) over the plain password.
// An empty sessionSecret yields a random key, invalidating sessions on restart.
func NewAdminAuthService(password, passwordHash, sessionSecret string, ttl time.Duration) (*AdminAuthService, error) {
	if password == "" && passwordHash == "" {
		return nil, errors.New("admin secret is not configured")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	key := []byte(sessionSecret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		log.Println("Warning: SESSION_SECRET not set, sessions will not survive a restart")
	}

	svc := &AdminAuthService{
		password:   password,
		signingKey: key,
		ttl:        ttl,
		now:        time.Now,
	}
	if passwordHash != "" {
		svc.passwordHash = []byte(passwordHash)
	}
	return svc, nil
}

// CheckSecret compares secret in full, case-sensitively.
func (s *AdminAuthService) CheckSecret(secret string) error {
	if s.passwordHash != nil {
		if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(secret)) != nil {
			return ErrInvalidSecret
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.password)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}

// Login checks secret and returns a signed session token.
func (s *AdminAuthService) Login(secret string) (string, time.Time, error) {
	if err := s.CheckSecret(secret); err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := AdminClaims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateSession parses and verifies a session token.
func (s *AdminAuthService) ValidateSession(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || claims.Role != adminSubject {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
