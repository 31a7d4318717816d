// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
)

// loginRequest is the credentials body for the login endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the issued JWT.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a JWT and persists it in the token
// store. The token is stored verbatim; claims are read later, on demand.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp loginResponse
	err := c.postJSON(ctx, c.endpoint(epLogin), loginRequest{
		Username: username,
		Password: password,
	}, &resp, false)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("login succeeded but no token was returned")
	}
	if err := c.tokens.SetToken(resp.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Logout discards the stored token. Purely local; the backend keeps no
// session state.
func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}
