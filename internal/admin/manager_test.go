// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/storage"
	"github.com/jeranaias/chatdeck-tui/internal/token"
)

// rosterServer fakes the admin endpoints over a mutable roster.
type rosterServer struct {
	mu        sync.Mutex
	usernames []string
	failNext  bool
}

func (rs *rosterServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		defer rs.mu.Unlock()

		if rs.failNext {
			rs.failNext = false
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "server exploded"})
			return
		}

		switch r.URL.Path {
		case "/api/admins/list":
			admins := make([]api.Admin, 0, len(rs.usernames))
			for i, u := range rs.usernames {
				admins = append(admins, api.Admin{ID: string(rune('a' + i)), Username: u})
			}
			json.NewEncoder(w).Encode(admins)
		case "/api/admins/create":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			rs.usernames = append(rs.usernames, body["username"])
			w.Write([]byte("{}"))
		case "/api/admins/delete":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("ParseMultipartForm: %v", err)
			}
			target := r.FormValue("username")
			kept := rs.usernames[:0]
			for _, u := range rs.usernames {
				if u != target {
					kept = append(kept, u)
				}
			}
			rs.usernames = kept
			w.Write([]byte("{}"))
		case "/api/admins/update-password":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("ParseMultipartForm: %v", err)
			}
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func newManagerForTest(t *testing.T, rs *rosterServer) (*Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(rs.handler(t))
	t.Cleanup(srv.Close)

	tokens := token.NewStore(storage.NewMemStore())
	if err := tokens.SetToken("test-token"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	client := api.NewClient(tokens).WithBaseURL(srv.URL + "/api")
	return NewManager(client), srv
}

func TestCreateRefreshesRoster(t *testing.T) {
	rs := &rosterServer{usernames: []string{"alice"}}
	mgr, _ := newManagerForTest(t, rs)

	if err := mgr.Create(context.Background(), "bob", "pw", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	admins := mgr.Admins()
	if len(admins) != 2 {
		t.Fatalf("roster size = %d, expected refresh to pick up the new admin", len(admins))
	}
	if admins[1].Username != "bob" {
		t.Errorf("roster = %+v", admins)
	}
}

func TestCreateErrorSurfaced(t *testing.T) {
	rs := &rosterServer{usernames: []string{"alice"}, failNext: true}
	mgr, _ := newManagerForTest(t, rs)

	err := mgr.Create(context.Background(), "bob", "pw", nil)
	if err == nil {
		t.Fatal("expected create error to be surfaced")
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Detail != "server exploded" {
		t.Errorf("error = %v", err)
	}
}

func TestDeleteIsTwoPhase(t *testing.T) {
	rs := &rosterServer{usernames: []string{"alice", "bob"}}
	mgr, _ := newManagerForTest(t, rs)
	if err := mgr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	// Staging alone must not touch the server.
	mgr.StageDelete("bob")
	if got := mgr.PendingDelete(); got != "bob" {
		t.Errorf("PendingDelete = %q", got)
	}
	if len(rs.usernames) != 2 {
		t.Fatal("staging a delete mutated the server")
	}

	// Cancel clears the stage.
	mgr.CancelDelete()
	if err := mgr.ConfirmDelete(context.Background()); !errors.Is(err, ErrNoPendingDelete) {
		t.Errorf("ConfirmDelete after cancel = %v, expected ErrNoPendingDelete", err)
	}

	// Stage again and confirm for real.
	mgr.StageDelete("bob")
	if err := mgr.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	admins := mgr.Admins()
	if len(admins) != 1 || admins[0].Username != "alice" {
		t.Errorf("roster after delete = %+v", admins)
	}
	if mgr.PendingDelete() != "" {
		t.Error("stage not cleared after confirm")
	}
}

func TestUpdatePassword(t *testing.T) {
	rs := &rosterServer{usernames: []string{"alice"}}
	mgr, _ := newManagerForTest(t, rs)

	if err := mgr.UpdatePassword(context.Background(), "alice", "newpw"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
}
