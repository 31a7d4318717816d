// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/chatdeck-tui/internal/storage"
)

// signToken builds a real HS256 token for tests. The signing key is
// irrelevant: the store never verifies signatures.
func signToken(t *testing.T, username, role string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tok
}

func TestTokenRoundTrip(t *testing.T) {
	s := NewStore(storage.NewMemStore())

	if got := s.Token(); got != "" {
		t.Errorf("Token on empty store = %q, expected empty", got)
	}

	if err := s.SetToken("opaque-value"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if got := s.Token(); got != "opaque-value" {
		t.Errorf("Token = %q, expected %q", got, "opaque-value")
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}
	if got := s.Token(); got != "" {
		t.Errorf("Token after clear = %q, expected empty", got)
	}
}

func TestUserInfoDecodesClaims(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s.SetToken(signToken(t, "alice", "superadmin", exp))

	info := s.UserInfo()
	if info == nil {
		t.Fatal("UserInfo returned nil for a valid token")
	}
	if info.Username != "alice" {
		t.Errorf("Username = %q, expected alice", info.Username)
	}
	if info.Role != "superadmin" {
		t.Errorf("Role = %q, expected superadmin", info.Role)
	}
	if !info.Expiry.Equal(exp) {
		t.Errorf("Expiry = %v, expected %v", info.Expiry, exp)
	}
	if !info.IsSuperadmin() {
		t.Error("IsSuperadmin = false, expected true")
	}
}

func TestUserInfoNoToken(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	if info := s.UserInfo(); info != nil {
		t.Errorf("UserInfo with no token = %+v, expected nil", info)
	}
}

func TestUserInfoMalformedToken(t *testing.T) {
	// Decode failure degrades to "no user", it does not panic or error.
	s := NewStore(storage.NewMemStore())
	s.SetToken("not-a-jwt")
	if info := s.UserInfo(); info != nil {
		t.Errorf("UserInfo with malformed token = %+v, expected nil", info)
	}
}

func TestUserInfoExpiredTokenStillDecodes(t *testing.T) {
	// No local expiry enforcement: the server's 401 is the enforcement
	// point, so an expired token still yields an identity.
	s := NewStore(storage.NewMemStore())
	s.SetToken(signToken(t, "bob", "admin", time.Now().Add(-time.Hour)))

	info := s.UserInfo()
	if info == nil {
		t.Fatal("UserInfo returned nil for an expired token")
	}
	if info.Username != "bob" {
		t.Errorf("Username = %q, expected bob", info.Username)
	}
	if info.IsSuperadmin() {
		t.Error("IsSuperadmin = true for role admin, expected false")
	}
}
