package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "a@x.com", []string{"CUSTOMER", "PROVIDER"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got := ExtractSubject(claims); got != "a@x.com" {
		t.Errorf("subject = %q, want a@x.com", got)
	}
	if got := ExtractUserID(claims); got != 42 {
		t.Errorf("user id = %d, want 42", got)
	}
	roles := ExtractRoles(claims)
	if len(roles) != 2 || roles[0] != "CUSTOMER" || roles[1] != "PROVIDER" {
		t.Errorf("roles = %v", roles)
	}
	if !IsAccessToken(claims) {
		t.Error("expected access token type")
	}
	if !ValidateForUser(token, "a@x.com") {
		t.Error("expected token to validate for its own subject")
	}
	if ValidateForUser(token, "b@x.com") {
		t.Error("token must not validate for another subject")
	}
}

func TestRefreshTokenType(t *testing.T) {
	token, err := GenerateRefreshToken(7, "a@x.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if IsAccessToken(claims) {
		t.Error("refresh token must not carry the access type")
	}
	if TokenType(claims) != TokenTypeRefresh {
		t.Errorf("type = %q, want %q", TokenType(claims), TokenTypeRefresh)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "a@x.com",
		"type": TokenTypeAccess,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, err := expired.SignedString(jwtSecret())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(tokenString); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if ValidateForUser(tokenString, "a@x.com") {
		t.Error("expired token must not validate")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "a@x.com",
		"type": TokenTypeAccess,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := forged.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(tokenString); err == nil {
		t.Fatal("expected mis-signed token to be rejected")
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseToken(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
