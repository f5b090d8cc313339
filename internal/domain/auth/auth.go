// Package auth covers the dashboard's deliberately small access
// model: one shared studio login that yields a JWT, plus a separate
// admin key required for destructive operations.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims is the JWT payload issued at login.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Verifier checks the shared credentials and mints tokens.
type Verifier struct {
	username     string
	passwordHash string
	adminKeyHash string
	secret       []byte
	tokenTTL     time.Duration
}

// NewVerifier hashes the configured credentials once at startup.
func NewVerifier(username, password, adminKey, secret string, tokenTTL time.Duration) (*Verifier, error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	adminKeyHash, err := HashPassword(adminKey)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		username:     username,
		passwordHash: passwordHash,
		adminKeyHash: adminKeyHash,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}, nil
}

// Login checks the shared credentials and returns a signed token.
func (v *Verifier) Login(username, password string) (string, error) {
	if username != v.username || !CheckPassword(v.passwordHash, password) {
		return "", ErrInvalidCredentials
	}
	return v.GenerateToken(username)
}

// GenerateToken mints an HS256 token for the given user.
func (v *Verifier) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed token and returns its claims.
func (v *Verifier) ParseToken(signed string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(signed, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CheckAdminKey reports whether the supplied key authorizes
// destructive operations.
func (v *Verifier) CheckAdminKey(key string) bool {
	return key != "" && CheckPassword(v.adminKeyHash, key)
}
