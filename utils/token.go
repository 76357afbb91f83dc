package utils

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Token types carried in the "type" claim. A refresh token must never be
// accepted as an authentication credential.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

func envSeconds(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// AccessTokenExpirySeconds is returned to clients alongside issued tokens.
func AccessTokenExpirySeconds() int64 {
	return envSeconds("JWT_ACCESS_EXPIRATION", 3600)
}

func RefreshTokenExpirySeconds() int64 {
	return envSeconds("JWT_REFRESH_EXPIRATION", 7*24*3600)
}

// GenerateAccessToken issues a signed access token carrying the subject
// email, the user id and the flattened role claims.
func GenerateAccessToken(userID uint, email string, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   email,
		"id":    userID,
		"roles": strings.Join(roles, ","),
		"type":  TokenTypeAccess,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Duration(AccessTokenExpirySeconds()) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GenerateRefreshToken issues a long-lived token carrying the subject and
// the refresh type marker only.
func GenerateRefreshToken(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"id":   userID,
		"type": TokenTypeRefresh,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Duration(RefreshTokenExpirySeconds()) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken verifies the signature and expiry and returns the claims.
// Any failure is reported as ErrInvalidToken; callers must treat it as
// "invalid", never as "valid".
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateForUser reports whether the token is valid and belongs to email.
func ValidateForUser(tokenString, email string) bool {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return false
	}
	return ExtractSubject(claims) == email
}

func ExtractSubject(claims jwt.MapClaims) string {
	sub, _ := claims["sub"].(string)
	return sub
}

func ExtractRoles(claims jwt.MapClaims) []string {
	raw, _ := claims["roles"].(string)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// ExtractUserID tolerates the numeric widening JSON claims go through.
func ExtractUserID(claims jwt.MapClaims) uint {
	switch v := claims["id"].(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case uint:
		return v
	}
	return 0
}

func TokenType(claims jwt.MapClaims) string {
	t, _ := claims["type"].(string)
	return t
}

func IsAccessToken(claims jwt.MapClaims) bool {
	return TokenType(claims) == TokenTypeAccess
}
