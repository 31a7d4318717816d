// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatdeck-tui/internal/keys"
	"github.com/jeranaias/chatdeck-tui/internal/ui/styles"
)

// keysModel is the API key demonstration screen.
type keysModel struct {
	theme *styles.Theme
	mgr   *keys.Manager

	list     []keys.Key
	selected int

	// revealed holds the ID of the key whose secret is shown in full.
	// Only one at a time; everything else renders masked.
	revealed string

	errText string

	width  int
	height int
}

// newKeysModel creates the key screen.
func newKeysModel(theme *styles.Theme, mgr *keys.Manager) keysModel {
	return keysModel{theme: theme, mgr: mgr}
}

// loadCmd reads the persisted key list.
func (m keysModel) loadCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		ks, err := mgr.List()
		return NewKeysLoadedMsg(ks, err)
	}
}

// Update handles key screen messages.
func (m keysModel) Update(msg tea.Msg) (keysModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case KeysLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.list = msg.Keys
		if m.selected >= len(m.list) {
			m.selected = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.list)-1 {
				m.selected++
			}
		case "g":
			if _, err := m.mgr.Generate(); err != nil {
				m.errText = err.Error()
				return m, nil
			}
			return m, m.loadCmd()
		case "x":
			if len(m.list) > 0 {
				if err := m.mgr.Revoke(m.list[m.selected].ID); err != nil {
					m.errText = err.Error()
					return m, nil
				}
				return m, m.loadCmd()
			}
		case "enter":
			if len(m.list) > 0 {
				id := m.list[m.selected].ID
				if m.revealed == id {
					m.revealed = ""
				} else {
					m.revealed = id
				}
			}
		}
	}
	return m, nil
}

// View renders the key list.
func (m keysModel) View() string {
	header := m.theme.Header.Width(m.width).Render(
		m.theme.Title.Render("API Keys") + "  " +
			m.theme.Muted.Render("demonstration only, keys grant no access"),
	)

	var b strings.Builder
	if len(m.list) == 0 {
		b.WriteString(m.theme.Muted.Render("No keys. Press g to generate one."))
	}
	for i, k := range m.list {
		secret := k.Masked()
		if m.revealed == k.ID {
			secret = k.Secret
		}
		line := fmt.Sprintf("%-10s %-38s created %s",
			k.Name, secret, k.Created.Format("2006-01-02 15:04"))
		if i == m.selected {
			b.WriteString(m.theme.ListSelected.Render(line))
		} else {
			b.WriteString(m.theme.ListItem.Render(line))
		}
		b.WriteString("\n")
	}
	body := lipgloss.NewStyle().Padding(1, 2).Height(m.height - 3).Render(b.String())

	status := m.errText
	if status == "" {
		status = m.theme.ShortcutKey.Render("g") + m.theme.ShortcutDesc.Render(" generate  ") +
			m.theme.ShortcutKey.Render("x") + m.theme.ShortcutDesc.Render(" revoke  ") +
			m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" reveal  ") +
			m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" back")
	} else {
		status = m.theme.Error.Render(status)
	}
	statusBar := m.theme.StatusBar.Width(m.width).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}
