package security

import (
	"bytes"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"

	token, err := GenerateAccessToken(secret, "user-1", "sess-1", "dev-1", "user", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ParseAccessToken(token, secret)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}

	if claims.UserID != "user-1" || claims.SessionID != "sess-1" || claims.DeviceID != "dev-1" || claims.Role != "user" {
		t.Errorf("claims = %+v, want original values", claims)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken("secret-a", "user-1", "sess-1", "dev-1", "user", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := ParseAccessToken(token, "secret-b"); err == nil {
		t.Fatal("ParseAccessToken() with wrong secret succeeded")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken("secret", "user-1", "sess-1", "dev-1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := ParseAccessToken(token, "secret"); err == nil {
		t.Fatal("ParseAccessToken() accepted an expired token")
	}
}

func TestRefreshTokenHashStable(t *testing.T) {
	t.Parallel()

	token, hash, err := GenerateRefreshToken(64)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if token == "" || len(hash) == 0 {
		t.Fatal("empty refresh token or hash")
	}

	if !bytes.Equal(hash, HashRefreshToken(token)) {
		t.Error("HashRefreshToken(token) does not match generated hash")
	}

	other, _, err := GenerateRefreshToken(64)
	if err != nil {
		t.Fatalf("second GenerateRefreshToken() error = %v", err)
	}
	if other == token {
		t.Error("two refresh tokens are identical")
	}
}
