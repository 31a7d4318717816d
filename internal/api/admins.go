// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"io"
)

// Admin is one administrator account as listed by the backend.
type Admin struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// AvatarUpload is an optional profile image attached to admin creation.
type AvatarUpload struct {
	Filename string
	Reader   io.Reader
}

// CreateAdmin registers a new administrator. Without an avatar the
// request is plain JSON; with one it switches to multipart, matching
// the two request shapes the backend accepts.
func (c *Client) CreateAdmin(ctx context.Context, username, password string, avatar *AvatarUpload) error {
	if avatar == nil {
		return c.postJSON(ctx, c.endpoint(epAdminCreate), map[string]string{
			"username": username,
			"password": password,
		}, nil, true)
	}
	return c.postMultipart(ctx, c.endpoint(epAdminCreate), map[string]string{
		"username": username,
		"password": password,
	}, []filePart{
		{field: "image", filename: avatar.Filename, reader: avatar.Reader},
	}, nil)
}

// ListAdmins returns every administrator account.
func (c *Client) ListAdmins(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	if err := c.getJSON(ctx, c.endpoint(epAdminList), &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// DeleteAdmin removes an administrator by username.
func (c *Client) DeleteAdmin(ctx context.Context, username string) error {
	return c.postMultipart(ctx, c.endpoint(epAdminDelete), map[string]string{
		"username": username,
	}, nil, nil)
}

// UpdateAdminPassword sets a new password for an administrator.
func (c *Client) UpdateAdminPassword(ctx context.Context, username, password string) error {
	return c.postMultipart(ctx, c.endpoint(epAdminUpdatePassword), map[string]string{
		"username": username,
		"password": password,
	}, nil, nil)
}
