// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateAdminJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admins/create" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, expected JSON without an avatar", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "bob" || body["password"] != "pw" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	if err := c.CreateAdmin(context.Background(), "bob", "pw", nil); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
}

func TestCreateAdminWithAvatar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %q, expected multipart with an avatar", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("username") != "bob" || r.FormValue("password") != "pw" {
			t.Errorf("fields = %v", r.MultipartForm.Value)
		}
		if _, hdr, err := r.FormFile("image"); err != nil || hdr.Filename != "bob.png" {
			t.Errorf("image part missing or misnamed: %v", err)
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	avatar := &AvatarUpload{Filename: "bob.png", Reader: strings.NewReader("png")}
	if err := c.CreateAdmin(context.Background(), "bob", "pw", avatar); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
}

func TestListAdmins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admins/list" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"_id":"651f","username":"alice"},{"_id":"652a","username":"bob"}]`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	admins, err := c.ListAdmins(context.Background())
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 2 || admins[0].ID != "651f" || admins[1].Username != "bob" {
		t.Errorf("admins = %+v", admins)
	}
}

func TestDeleteAndUpdatePasswordAreMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		switch r.URL.Path {
		case "/api/admins/delete":
			if r.FormValue("username") != "bob" {
				t.Errorf("delete username = %q", r.FormValue("username"))
			}
		case "/api/admins/update-password":
			if r.FormValue("username") != "bob" || r.FormValue("password") != "newpw" {
				t.Errorf("update fields = %v", r.MultipartForm.Value)
			}
		default:
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	if err := c.DeleteAdmin(context.Background(), "bob"); err != nil {
		t.Fatalf("DeleteAdmin: %v", err)
	}
	if err := c.UpdateAdminPassword(context.Background(), "bob", "newpw"); err != nil {
		t.Fatalf("UpdateAdminPassword: %v", err)
	}
}
