package jwt

import (
	"strings"
	"testing"
	"time"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "kaokente",
		Audience: "kaokente-staff",
		TTL:      time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := testManager(t)

	token, jti, expiresAt, err := m.Generate("staff", "counter-tablet")
	if err != nil {
		t.Fatal(err)
	}
	if jti == "" || token == "" {
		t.Fatal("empty token or jti")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expiry must be in the future")
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if !claims.IsStaff() {
		t.Error("expected staff role")
	}
	if claims.ID != jti {
		t.Errorf("jti = %q, want %q", claims.ID, jti)
	}
	if claims.Device != "counter-tablet" {
		t.Errorf("device = %q", claims.Device)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	m := testManager(t)
	token, _, _, err := m.Generate("staff", "")
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.Verify(tampered); err == nil {
		t.Error("tampered token must not verify")
	}

	other, err := NewManager(Config{Secret: "other-secret", Issuer: "kaokente", Audience: "kaokente-staff"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Error("token signed with a different secret must not verify")
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(Config{Secret: "test-secret", Issuer: "kaokente", Audience: "someone-else"})
	if err != nil {
		t.Fatal(err)
	}
	token, _, _, err := other.Generate("staff", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Verify(token); err == nil || !strings.Contains(err.Error(), "invalid token") {
		t.Errorf("expected audience rejection, got %v", err)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Error("expected error for missing secret")
	}
}
