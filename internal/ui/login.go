// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/ui/styles"
)

// loginField indexes the focusable login inputs.
type loginField int

const (
	fieldUsername loginField = iota
	fieldPassword
)

// loginModel is the credential form.
type loginModel struct {
	theme  *styles.Theme
	client *api.Client

	username textinput.Model
	password textinput.Model
	focused  loginField

	submitting bool
	errText    string

	width  int
	height int
}

// newLoginModel creates the login form.
func newLoginModel(theme *styles.Theme, client *api.Client) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{
		theme:    theme,
		client:   client,
		username: username,
		password: password,
		focused:  fieldUsername,
	}
}

// Update handles login view messages.
func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.focused == fieldUsername {
				m.toggleFocus()
				return m, nil
			}
			return m.submit()
		}

	case LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errText = loginErrorText(msg.Err)
			m.password.SetValue("")
			return m, nil
		}
		m.errText = ""
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == fieldUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// submit validates and fires the login command.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errText = "Username and password are required."
		return m, nil
	}
	m.submitting = true
	m.errText = ""
	return m, loginCmd(m.client, username, password)
}

func (m *loginModel) toggleFocus() {
	if m.focused == fieldUsername {
		m.focused = fieldPassword
		m.username.Blur()
		m.password.Focus()
	} else {
		m.focused = fieldUsername
		m.password.Blur()
		m.username.Focus()
	}
}

// loginErrorText maps a login failure to what the form shows.
func loginErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "Could not reach the server. Is it running?"
}

// View renders the centered login card.
func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("chatdeck"))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Sign in to the chat administration service"))
	b.WriteString("\n\n")

	userStyle := m.theme.FieldBlurred
	passStyle := m.theme.FieldBlurred
	if m.focused == fieldUsername {
		userStyle = m.theme.FieldFocused
	} else {
		passStyle = m.theme.FieldFocused
	}

	b.WriteString(m.theme.Label.Render("Username"))
	b.WriteString("\n")
	b.WriteString(userStyle.Render(m.username.View()))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(passStyle.Render(m.password.View()))
	b.WriteString("\n\n")

	switch {
	case m.submitting:
		b.WriteString(m.theme.Muted.Render("Signing in..."))
	case m.errText != "":
		b.WriteString(m.theme.Error.Render(m.errText))
	default:
		b.WriteString(m.theme.Muted.Render("enter to submit, tab to switch fields"))
	}

	card := lipgloss.NewStyle().Padding(1, 3).Render(b.String())
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
