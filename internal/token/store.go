// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package token manages the session token and the identity derived from it.
//
// The token is an opaque string issued by the server at login and persisted
// through the storage layer. Identity (username, role, expiry) is read out
// of the token's JWT claims WITHOUT signature verification: the client has
// no key material, and the server's 401 is the real enforcement point. An
// expired-but-structurally-valid token still yields a user object.
package token

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/chatdeck-tui/internal/storage"
)

// RoleSuperadmin is the role that unlocks admin management.
const RoleSuperadmin = "superadmin"

// UserInfo is the identity decoded from the session token.
type UserInfo struct {
	Username string
	Role     string
	Expiry   time.Time
}

// IsSuperadmin reports whether the user may manage admin accounts.
func (u *UserInfo) IsSuperadmin() bool {
	return u != nil && u.Role == RoleSuperadmin
}

// Store reads and writes the session token.
type Store struct {
	backend storage.Store
}

// NewStore creates a token store over the given storage backend.
func NewStore(backend storage.Store) *Store {
	return &Store{backend: backend}
}

// Token returns the persisted session token, or "" if absent.
func (s *Store) Token() string {
	data, err := s.backend.Get(storage.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("token: failed to read token: %v", err)
		}
		return ""
	}
	return string(data)
}

// SetToken persists the session token. Called only at login.
func (s *Store) SetToken(token string) error {
	return s.backend.Set(storage.KeyAuthToken, []byte(token))
}

// ClearToken removes the session token. Called only at logout and on
// server-reported auth failure.
func (s *Store) ClearToken() error {
	return s.backend.Delete(storage.KeyAuthToken)
}

// UserInfo decodes the stored token into an identity.
//
// Absence or decode failure yields nil, never an error: "no user" is a
// normal state, not a fault. Decode failures are logged for diagnosis.
func (s *Store) UserInfo() *UserInfo {
	tok := s.Token()
	if tok == "" {
		return nil
	}
	return Decode(tok)
}

// Decode extracts identity claims from a JWT without verifying it.
// Returns nil if the token is not structurally a JWT.
func Decode(tok string) *UserInfo {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		log.Printf("token: failed to decode token: %v", err)
		return nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		log.Printf("token: unexpected claims type %T", parsed.Claims)
		return nil
	}

	info := &UserInfo{}
	if sub, ok := claims["sub"].(string); ok {
		info.Username = sub
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.Expiry = time.Unix(int64(exp), 0)
	}
	return info
}
