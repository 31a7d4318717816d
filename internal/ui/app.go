// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatdeck-tui/internal/admin"
	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/config"
	"github.com/jeranaias/chatdeck-tui/internal/keys"
	"github.com/jeranaias/chatdeck-tui/internal/session"
	"github.com/jeranaias/chatdeck-tui/internal/storage"
	"github.com/jeranaias/chatdeck-tui/internal/token"
	"github.com/jeranaias/chatdeck-tui/internal/ui/styles"
)

// view identifies the active screen.
type view int

const (
	viewLogin view = iota
	viewChat
	viewAdmins
	viewKeys
)

// App is the root Bubble Tea model. It owns the screen router and the
// authentication redirect: any server-reported token failure clears
// the stored token and lands on the login view.
type App struct {
	theme  *styles.Theme
	cfg    *config.Config
	client *api.Client
	tokens *token.Store

	sessions *session.Manager
	admins   *admin.Manager
	keys     *keys.Manager

	active view
	login  loginModel
	chat   chatModel
	adminV adminsModel
	keysV  keysModel

	width  int
	height int
}

// NewApp wires the application together.
func NewApp(cfg *config.Config, client *api.Client, tokens *token.Store, store storage.Store) *App {
	dark := cfg.UI.Theme == "dark"
	theme := styles.NewTheme(&dark)

	app := &App{
		theme:    theme,
		cfg:      cfg,
		client:   client,
		tokens:   tokens,
		sessions: session.NewManager(),
		admins:   admin.NewManager(client),
		keys:     keys.NewManager(store),
	}

	app.login = newLoginModel(theme, client)
	app.keysV = newKeysModel(theme, app.keys)
	app.adminV = newAdminsModel(theme, client, app.admins)

	if user := tokens.UserInfo(); user != nil {
		app.enterChat(user)
	} else {
		app.active = viewLogin
	}
	return app
}

// enterChat builds the chat view for the authenticated user.
func (a *App) enterChat(user *token.UserInfo) {
	a.chat = newChatModel(a.theme, a.client, a.sessions, user,
		a.cfg.UI.SidebarWidth, a.cfg.UI.Markdown)
	a.active = viewChat
}

// Init starts the chat spinner and, for superadmins, the roster load.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.chat.Init()}
	if a.active == viewChat && a.chat.showSidebar {
		cmds = append(cmds, a.adminV.refreshCmd())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every view tracks its own size.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
		a.adminV, cmd = a.adminV.Update(msg)
		cmds = append(cmds, cmd)
		a.keysV, cmd = a.keysV.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+a":
			if a.active == viewChat && a.chat.showSidebar {
				a.active = viewAdmins
				return a, a.adminV.refreshCmd()
			}
		case "ctrl+k":
			if a.active == viewChat {
				a.active = viewKeys
				return a, a.keysV.loadCmd()
			}
		case "esc":
			if a.active == viewAdmins || a.active == viewKeys {
				// esc from a sub-screen's list returns to chat;
				// deeper modes consume it themselves first.
				if a.active == viewKeys || a.adminV.mode == adminModeList {
					a.active = viewChat
					return a, nil
				}
			}
		}

	case LoginResultMsg:
		if msg.Err == nil {
			user := a.tokens.UserInfo()
			if user != nil {
				a.enterChat(user)
				cmds := []tea.Cmd{a.chat.Init()}
				if a.chat.showSidebar {
					cmds = append(cmds, a.adminV.refreshCmd())
				}
				return a, tea.Batch(cmds...)
			}
			log.Printf("ui: login succeeded but token did not decode")
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	// Background results are routed to their owning view regardless of
	// which screen is showing; a slow reply must land even after the
	// user navigates away. Auth failures short-circuit to login.
	case ChatResultMsg:
		if msg.Err != nil && api.IsAuthError(msg.Err) {
			return a, a.forceLogin()
		}
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case HistoryLoadedMsg:
		if msg.Err != nil && api.IsAuthError(msg.Err) {
			return a, a.forceLogin()
		}
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case AdminsLoadedMsg:
		if msg.Err != nil && api.IsAuthError(msg.Err) {
			return a, a.forceLogin()
		}
		// The chat sidebar mirrors the roster.
		if msg.Err == nil {
			a.chat.setAdmins(a.admins.Admins())
		}
		var cmd tea.Cmd
		a.adminV, cmd = a.adminV.Update(msg)
		return a, cmd

	case AdminMutationMsg:
		if msg.Err != nil && api.IsAuthError(msg.Err) {
			return a, a.forceLogin()
		}
		var cmd tea.Cmd
		a.adminV, cmd = a.adminV.Update(msg)
		return a, cmd

	case SummariesLoadedMsg:
		if msg.Err != nil && api.IsAuthError(msg.Err) {
			return a, a.forceLogin()
		}
		var cmd tea.Cmd
		a.adminV, cmd = a.adminV.Update(msg)
		return a, cmd

	case KeysLoadedMsg:
		var cmd tea.Cmd
		a.keysV, cmd = a.keysV.Update(msg)
		return a, cmd

	case ConfigReloadedMsg:
		a.cfg = msg.Config
		return a, nil
	}

	var cmd tea.Cmd
	switch a.active {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewChat:
		a.chat, cmd = a.chat.Update(msg)
	case viewAdmins:
		a.adminV, cmd = a.adminV.Update(msg)
	case viewKeys:
		a.keysV, cmd = a.keysV.Update(msg)
	}
	return a, cmd
}

// forceLogin clears the rejected token and returns to the login view.
// Conversation state is abandoned wholesale: the in-flight request that
// triggered the redirect will never resolve, and a surviving manager
// would refuse every send on that conversation forever.
func (a *App) forceLogin() tea.Cmd {
	if err := a.tokens.ClearToken(); err != nil {
		log.Printf("ui: failed to clear rejected token: %v", err)
	}
	a.sessions = session.NewManager()
	a.login = newLoginModel(a.theme, a.client)
	a.active = viewLogin
	return nil
}

// View renders the active screen.
func (a *App) View() string {
	switch a.active {
	case viewLogin:
		return a.login.View()
	case viewAdmins:
		return a.adminV.View()
	case viewKeys:
		return a.keysV.View()
	default:
		return a.chat.View()
	}
}
