package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/videoteka/videoteka-backend/pkg/auth"
	"github.com/videoteka/videoteka-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "videoteka-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := auth.MintAccessToken(cfg, time.Now(), "alice")
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	claims, err := auth.ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Username() != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Username())
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()

	issuedAt := time.Now().Add(-time.Duration(cfg.ExpirationMinutes+5) * time.Minute)
	token, err := auth.MintAccessToken(cfg, issuedAt, "alice")
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	if _, err := auth.ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	cfg := testJWTConfig()

	token, err := auth.MintAccessToken(cfg, time.Now(), "alice")
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := auth.ParseAccessToken(cfg, tampered); err == nil {
		t.Fatal("expected tampered token to fail validation")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, err := auth.MintAccessToken(cfg, time.Now(), "alice")
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := auth.ParseAccessToken(other, token); err == nil {
		t.Fatal("expected token signed with another secret to fail")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := auth.ParseAccessToken(testJWTConfig(), "not.a.jwt"); err == nil {
		t.Fatal("expected malformed token to fail")
	}
}

func TestMintRequiresSubject(t *testing.T) {
	if _, err := auth.MintAccessToken(testJWTConfig(), time.Now(), "  "); err == nil {
		t.Fatal("expected error for blank subject")
	}
}
