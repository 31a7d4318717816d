// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/model"
	"github.com/jeranaias/chatdeck-tui/internal/session"
	"github.com/jeranaias/chatdeck-tui/internal/token"
	"github.com/jeranaias/chatdeck-tui/internal/ui/styles"
	"github.com/jeranaias/chatdeck-tui/internal/util"
)

// attachCommand starts a file send from the input line.
const attachCommand = "/attach "

// chatModel is the conversation view: sidebar (superadmin only),
// message viewport, and input line.
type chatModel struct {
	theme  *styles.Theme
	client *api.Client
	mgr    *session.Manager
	user   *token.UserInfo

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Sidebar state. Entries beyond the first are admin usernames.
	entries      []sidebarEntry
	selected     int
	sidebarFocus bool
	sidebarWidth int
	showSidebar  bool
	loadingHist  bool

	markdown *glamour.TermRenderer
	errText  string

	width  int
	height int
}

// newChatModel creates the conversation view. The sidebar is only
// offered to superadmins; everyone else gets the scratch conversation.
func newChatModel(theme *styles.Theme, client *api.Client, mgr *session.Manager, user *token.UserInfo, sidebarWidth int, renderMarkdown bool) chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message, or /attach <path> [prompt]"
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Teal)

	var renderer *glamour.TermRenderer
	if renderMarkdown {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	}

	return chatModel{
		theme:        theme,
		client:       client,
		mgr:          mgr,
		user:         user,
		viewport:     viewport.New(0, 0),
		input:        input,
		spinner:      sp,
		entries:      []sidebarEntry{newChatEntry},
		sidebarWidth: sidebarWidth,
		showSidebar:  user.IsSuperadmin(),
		markdown:     renderer,
	}
}

// setAdmins rebuilds the sidebar entries from the roster.
func (m *chatModel) setAdmins(admins []api.Admin) {
	entries := []sidebarEntry{newChatEntry}
	for _, a := range admins {
		entries = append(entries, sidebarEntry{Key: a.Username, Label: a.Username})
	}
	m.entries = entries
	if m.selected >= len(entries) {
		m.selected = 0
	}
}

// Init starts the spinner.
func (m chatModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles chat view messages.
func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatResultMsg:
		if msg.Err != nil {
			m.mgr.Fail(msg.RequestID)
		} else {
			m.mgr.Resolve(msg.RequestID, msg.Reply)
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case HistoryLoadedMsg:
		m.loadingHist = false
		if msg.Err != nil {
			// The conversation simply shows up empty; the failure is
			// only visible in the log.
			log.Printf("chat: history load for %s failed: %v", msg.Key, msg.Err)
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.mgr.HasInFlight() || m.loadingHist {
			m.refreshViewport()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes keys between the sidebar and the input line.
func (m chatModel) handleKey(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.showSidebar {
			m.sidebarFocus = !m.sidebarFocus
			if m.sidebarFocus {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
		}
		return m, nil

	case "up", "k":
		if m.sidebarFocus {
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		}

	case "down", "j":
		if m.sidebarFocus {
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
			return m, nil
		}

	case "enter":
		if m.sidebarFocus {
			return m.openSelected()
		}
		return m.submitInput()

	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	if !m.sidebarFocus {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openSelected switches to the selected sidebar conversation and loads
// its history.
func (m chatModel) openSelected() (chatModel, tea.Cmd) {
	entry := m.entries[m.selected]
	m.mgr.SwitchTo(entry.Key)
	m.sidebarFocus = false
	m.input.Focus()
	m.refreshViewport()
	if entry.Key == model.NewChatKey {
		return m, nil
	}
	m.loadingHist = true
	return m, loadHistoryCmd(m.mgr, m.client, entry.Key)
}

// submitInput sends the typed message or starts the attach pipeline.
func (m chatModel) submitInput() (chatModel, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, strings.TrimSpace(attachCommand)) {
		return m.submitAttachment(text)
	}

	requestID, err := m.mgr.Begin(text)
	if err != nil {
		// A send is already running; keep the draft in the input.
		return m, nil
	}
	m.input.SetValue("")
	m.errText = ""
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, sendChatCmd(m.client, requestID, text)
}

// submitAttachment parses "/attach <path> [prompt]" and runs the
// document pipeline.
func (m chatModel) submitAttachment(text string) (chatModel, tea.Cmd) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, strings.TrimSpace(attachCommand)))
	if rest == "" {
		m.errText = "Usage: /attach <path> [prompt]"
		return m, nil
	}
	path := rest
	prompt := ""
	if i := strings.IndexByte(rest, ' '); i > 0 {
		path = rest[:i]
		prompt = strings.TrimSpace(rest[i+1:])
	}

	requestID, err := m.mgr.BeginAttachment(filepath.Base(path))
	if err != nil {
		return m, nil
	}
	m.input.SetValue("")
	m.errText = ""
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, runPipelineCmd(m.client, requestID, path, prompt)
}

// =============================================================================
// RENDERING
// =============================================================================

func (m *chatModel) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width
	if m.showSidebar {
		contentWidth -= m.sidebarWidth
	}
	// Header, input line, and status bar eat four rows.
	m.viewport.Width = contentWidth
	m.viewport.Height = height - 4
	m.input.Width = contentWidth - 4
}

// refreshViewport re-renders the conversation into the viewport.
func (m *chatModel) refreshViewport() {
	var b strings.Builder
	for _, msg := range m.mgr.Active() {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// renderMessage renders one message by role and state.
func (m *chatModel) renderMessage(msg model.Message) string {
	switch {
	case msg.State == model.StateTyping:
		return m.theme.TypingHint.Render(m.spinner.View() + " assistant is typing")

	case msg.State == model.StateFailed:
		return m.theme.FailedBubble.Render(msg.Content)

	case msg.Role == model.RoleUser && msg.State == model.StatePending:
		return m.theme.PendingBubble.Render(msg.Content)

	case msg.Role == model.RoleUser:
		return m.theme.UserBubble.Render(msg.Content)

	default:
		content := msg.Content
		if m.markdown != nil {
			if rendered, err := m.markdown.Render(content); err == nil {
				content = strings.TrimRight(rendered, "\n")
			}
		}
		return m.theme.AssistantBubble.Render(content)
	}
}

// renderSidebar renders the conversation list. Labels are clipped to
// the sidebar's content width; usernames can be arbitrarily long.
func (m *chatModel) renderSidebar() string {
	labelWidth := m.sidebarWidth - 4

	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Conversations"))
	b.WriteString("\n\n")
	for i, entry := range m.entries {
		style := m.theme.SidebarItem
		if i == m.selected && m.sidebarFocus {
			style = m.theme.SidebarSelected
		} else if entry.Key == m.mgr.ActiveKey() {
			style = m.theme.SidebarSelected
		}
		b.WriteString(style.Render(util.TruncateWidth(entry.Label, labelWidth)))
		b.WriteString("\n")
	}
	return m.theme.Sidebar.
		Width(m.sidebarWidth - 2).
		Height(m.height - 4).
		Render(b.String())
}

// View renders the chat screen.
func (m chatModel) View() string {
	header := m.theme.Header.Width(m.width).Render(
		m.theme.Title.Render("chatdeck") + "  " +
			m.theme.Muted.Render(m.user.Username),
	)

	body := m.viewport.View()
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}

	inputLine := m.theme.InputContainer.Width(m.width).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	)

	status := m.errText
	if status == "" {
		status = m.theme.ShortcutKey.Render("tab") + m.theme.ShortcutDesc.Render(" sidebar  ") +
			m.theme.ShortcutKey.Render("ctrl+a") + m.theme.ShortcutDesc.Render(" admins  ") +
			m.theme.ShortcutKey.Render("ctrl+k") + m.theme.ShortcutDesc.Render(" keys  ") +
			m.theme.ShortcutKey.Render("ctrl+c") + m.theme.ShortcutDesc.Render(" quit")
	} else {
		status = m.theme.Error.Render(status)
	}
	statusBar := m.theme.StatusBar.Width(m.width).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, inputLine, statusBar)
}
