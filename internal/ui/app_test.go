// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/config"
	"github.com/jeranaias/chatdeck-tui/internal/model"
	"github.com/jeranaias/chatdeck-tui/internal/storage"
	"github.com/jeranaias/chatdeck-tui/internal/token"
	"github.com/jeranaias/chatdeck-tui/internal/util"
)

// signToken builds a structurally valid JWT for tests. The signature
// is never verified client-side, so any key works.
func signToken(t *testing.T, username, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  float64(time.Now().Add(time.Hour).Unix()),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newTestApp(t *testing.T, role string) (*App, *token.Store) {
	t.Helper()
	store := storage.NewMemStore()
	tokens := token.NewStore(store)
	if role != "" {
		if err := tokens.SetToken(signToken(t, "alice", role)); err != nil {
			t.Fatalf("SetToken: %v", err)
		}
	}
	client := api.NewClient(tokens)
	return NewApp(config.Default(), client, tokens, store), tokens
}

func TestAppStartsOnLoginWithoutToken(t *testing.T) {
	app, _ := newTestApp(t, "")
	if app.active != viewLogin {
		t.Errorf("active view = %v, expected login", app.active)
	}
}

func TestAppStartsOnChatWithToken(t *testing.T) {
	app, _ := newTestApp(t, "admin")
	if app.active != viewChat {
		t.Errorf("active view = %v, expected chat", app.active)
	}
	if app.chat.showSidebar {
		t.Error("plain admin must not get the conversation sidebar")
	}
}

func TestSuperadminGetsSidebar(t *testing.T) {
	app, _ := newTestApp(t, "superadmin")
	if !app.chat.showSidebar {
		t.Error("superadmin should get the conversation sidebar")
	}
}

func TestAuthFailureRedirectsToLogin(t *testing.T) {
	app, tokens := newTestApp(t, "admin")

	msg := NewChatResultMsg("req-1", "", fmt.Errorf("wrapped: %w", api.ErrInvalidToken))
	updated, _ := app.Update(msg)
	app = updated.(*App)

	if app.active != viewLogin {
		t.Errorf("active view = %v, expected login after auth failure", app.active)
	}
	if tokens.Token() != "" {
		t.Error("rejected token must be cleared")
	}
}

func TestAuthFailureMidSendUnblocksConversation(t *testing.T) {
	app, tokens := newTestApp(t, "admin")

	app.chat.input.SetValue("Hello")
	chat, _ := app.chat.submitInput()
	app.chat = chat
	reqID := app.sessions.Active()[0].RequestID

	updated, _ := app.Update(NewChatResultMsg(reqID, "", fmt.Errorf("wrapped: %w", api.ErrInvalidToken)))
	app = updated.(*App)
	if app.active != viewLogin {
		t.Fatalf("active view = %v, expected login", app.active)
	}

	// Re-login and verify the conversation accepts sends again: no
	// sentinel from the abandoned request may survive the redirect.
	if err := tokens.SetToken(signToken(t, "alice", "admin")); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	updated, _ = app.Update(NewLoginResultMsg(nil))
	app = updated.(*App)
	if app.active != viewChat {
		t.Fatalf("active view = %v, expected chat after re-login", app.active)
	}
	if len(app.sessions.Active()) != 0 {
		t.Errorf("abandoned messages survived the redirect: %+v", app.sessions.Active())
	}
	if _, err := app.sessions.Begin("try again"); err != nil {
		t.Errorf("conversation still blocked after re-login: %v", err)
	}
}

func TestChatSendLifecycle(t *testing.T) {
	app, _ := newTestApp(t, "admin")

	app.chat.input.SetValue("Hello")
	chat, cmd := app.chat.submitInput()
	app.chat = chat
	if cmd == nil {
		t.Fatal("submit must produce a network command")
	}

	msgs := app.sessions.Active()
	if len(msgs) != 2 || msgs[0].State != model.StatePending || msgs[1].State != model.StateTyping {
		t.Fatalf("optimistic pair missing: %+v", msgs)
	}
	reqID := msgs[0].RequestID

	updated, _ := app.Update(NewChatResultMsg(reqID, "Hi there", nil))
	app = updated.(*App)

	msgs = app.sessions.Active()
	if msgs[1].Content != "Hi there" || msgs[1].State != model.StateSent {
		t.Errorf("reply not resolved: %+v", msgs[1])
	}
}

func TestChatSendFailureShowsFixedText(t *testing.T) {
	app, _ := newTestApp(t, "admin")

	app.chat.input.SetValue("Hello")
	chat, _ := app.chat.submitInput()
	app.chat = chat
	reqID := app.sessions.Active()[0].RequestID

	updated, _ := app.Update(NewChatResultMsg(reqID, "", fmt.Errorf("boom")))
	app = updated.(*App)

	msgs := app.sessions.Active()
	if msgs[1].State != model.StateFailed || msgs[1].Content != "⚠️ Server error. Try again." {
		t.Errorf("failed placeholder = %+v", msgs[1])
	}
}

func TestSidebarClipsLongUsernames(t *testing.T) {
	app, _ := newTestApp(t, "superadmin")
	long := strings.Repeat("administrator", 4)
	app.chat.setAdmins([]api.Admin{{ID: "1", Username: long}})
	chat, _ := app.chat.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app.chat = chat

	out := app.chat.renderSidebar()
	clipped := util.TruncateWidth(long, app.chat.sidebarWidth-4)
	if !strings.Contains(out, clipped) {
		t.Errorf("sidebar does not show the clipped label %q", clipped)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, long) {
			t.Errorf("sidebar renders the full username unclipped: %q", line)
		}
	}
}

func TestWindowSizePropagates(t *testing.T) {
	app, _ := newTestApp(t, "admin")
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = updated.(*App)
	if app.chat.width != 120 || app.chat.height != 40 {
		t.Errorf("chat size = %dx%d", app.chat.width, app.chat.height)
	}
}
