// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatdeck-tui/internal/admin"
	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/ui/styles"
)

// adminMode is the admin view's sub-state.
type adminMode int

const (
	adminModeList adminMode = iota
	adminModeCreate
	adminModePasswd
	adminModeConfirmDelete
	adminModeSummaries
)

// adminsModel is the administrator management screen (superadmin only).
type adminsModel struct {
	theme  *styles.Theme
	client *api.Client
	mgr    *admin.Manager

	mode     adminMode
	selected int

	// Create and password forms share these inputs.
	nameInput textinput.Model
	passInput textinput.Model
	formFocus int

	files        []api.FileRecord
	summaries    []api.SummaryRecord
	summariesFor string

	busy    bool
	errText string
	notice  string

	width  int
	height int
}

// newAdminsModel creates the admin management screen.
func newAdminsModel(theme *styles.Theme, client *api.Client, mgr *admin.Manager) adminsModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "username"
	nameInput.CharLimit = 64

	passInput := textinput.New()
	passInput.Placeholder = "password"
	passInput.CharLimit = 128
	passInput.EchoMode = textinput.EchoPassword
	passInput.EchoCharacter = '•'

	return adminsModel{
		theme:     theme,
		client:    client,
		mgr:       mgr,
		nameInput: nameInput,
		passInput: passInput,
	}
}

// refreshCmd reloads the roster in the background.
func (m adminsModel) refreshCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return NewAdminsLoadedMsg(mgr.Refresh(ctx))
	}
}

// summariesCmd fetches an admin's uploaded files and stored summaries.
func (m adminsModel) summariesCmd(username string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		files, err := client.ListFiles(ctx, username)
		if err != nil {
			return NewSummariesLoadedMsg(username, nil, nil, err)
		}
		records, err := client.SummaryHistory(ctx, username)
		return NewSummariesLoadedMsg(username, files, records, err)
	}
}

// Update handles admin view messages.
func (m adminsModel) Update(msg tea.Msg) (adminsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AdminsLoadedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = adminErrorText(msg.Err)
		} else {
			m.errText = ""
			if m.selected >= len(m.mgr.Admins()) {
				m.selected = 0
			}
		}
		return m, nil

	case AdminMutationMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = adminErrorText(msg.Err)
			return m, nil
		}
		m.errText = ""
		m.notice = fmt.Sprintf("%s succeeded", msg.Action)
		m.mode = adminModeList
		return m, nil

	case SummariesLoadedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = adminErrorText(msg.Err)
			return m, nil
		}
		m.errText = ""
		m.files = msg.Files
		m.summaries = msg.Summaries
		m.summariesFor = msg.Username
		m.mode = adminModeSummaries
		return m, nil
	}

	if m.mode == adminModeCreate || m.mode == adminModePasswd {
		var cmd tea.Cmd
		if m.formFocus == 0 && m.mode == adminModeCreate {
			m.nameInput, cmd = m.nameInput.Update(msg)
		} else {
			m.passInput, cmd = m.passInput.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// handleKey routes keys by mode.
func (m adminsModel) handleKey(msg tea.KeyMsg) (adminsModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	key := msg.String()

	switch m.mode {
	case adminModeList:
		return m.handleListKey(key)

	case adminModeCreate:
		switch key {
		case "esc":
			m.mode = adminModeList
			return m, nil
		case "tab", "shift+tab":
			m.toggleFormFocus()
			return m, nil
		case "enter":
			if m.formFocus == 0 {
				m.toggleFormFocus()
				return m, nil
			}
			return m.submitCreate()
		}

	case adminModePasswd:
		switch key {
		case "esc":
			m.mode = adminModeList
			return m, nil
		case "enter":
			return m.submitPasswd()
		}

	case adminModeConfirmDelete:
		switch key {
		case "y", "Y", "enter":
			return m.submitDelete()
		case "n", "N", "esc":
			m.mgr.CancelDelete()
			m.mode = adminModeList
			return m, nil
		}
		return m, nil

	case adminModeSummaries:
		if key == "esc" || key == "q" {
			m.mode = adminModeList
		}
		return m, nil
	}

	// Form input falls through to Update's input handling.
	var cmd tea.Cmd
	if m.mode == adminModeCreate && m.formFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else if m.mode == adminModeCreate || m.mode == adminModePasswd {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

// handleListKey handles navigation and actions in the roster list.
func (m adminsModel) handleListKey(key string) (adminsModel, tea.Cmd) {
	admins := m.mgr.Admins()
	switch key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(admins)-1 {
			m.selected++
		}
	case "r":
		m.busy = true
		return m, m.refreshCmd()
	case "n":
		m.mode = adminModeCreate
		m.formFocus = 0
		m.nameInput.SetValue("")
		m.passInput.SetValue("")
		m.nameInput.Focus()
		m.passInput.Blur()
		m.notice = ""
	case "p":
		if len(admins) > 0 {
			m.mode = adminModePasswd
			m.passInput.SetValue("")
			m.passInput.Focus()
			m.notice = ""
		}
	case "d":
		if len(admins) > 0 {
			m.mgr.StageDelete(admins[m.selected].Username)
			m.mode = adminModeConfirmDelete
			m.notice = ""
		}
	case "s":
		if len(admins) > 0 {
			m.busy = true
			return m, m.summariesCmd(admins[m.selected].Username)
		}
	}
	return m, nil
}

func (m *adminsModel) toggleFormFocus() {
	if m.formFocus == 0 {
		m.formFocus = 1
		m.nameInput.Blur()
		m.passInput.Focus()
	} else {
		m.formFocus = 0
		m.passInput.Blur()
		m.nameInput.Focus()
	}
}

// submitCreate fires the create mutation.
func (m adminsModel) submitCreate() (adminsModel, tea.Cmd) {
	username := strings.TrimSpace(m.nameInput.Value())
	password := m.passInput.Value()
	if username == "" || password == "" {
		m.errText = "Username and password are required."
		return m, nil
	}
	m.busy = true
	mgr := m.mgr
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return NewAdminMutationMsg("create", mgr.Create(ctx, username, password, nil))
	}
}

// submitPasswd fires the password change for the selected admin.
func (m adminsModel) submitPasswd() (adminsModel, tea.Cmd) {
	admins := m.mgr.Admins()
	if len(admins) == 0 {
		m.mode = adminModeList
		return m, nil
	}
	username := admins[m.selected].Username
	password := m.passInput.Value()
	if password == "" {
		m.errText = "Password is required."
		return m, nil
	}
	m.busy = true
	mgr := m.mgr
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return NewAdminMutationMsg("passwd", mgr.UpdatePassword(ctx, username, password))
	}
}

// submitDelete confirms the staged deletion.
func (m adminsModel) submitDelete() (adminsModel, tea.Cmd) {
	m.busy = true
	mgr := m.mgr
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return NewAdminMutationMsg("delete", mgr.ConfirmDelete(ctx))
	}
}

// adminErrorText maps an admin operation failure to display text.
func adminErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the admin screen by mode.
func (m adminsModel) View() string {
	var body string
	switch m.mode {
	case adminModeCreate:
		body = m.viewForm("New administrator", true)
	case adminModePasswd:
		body = m.viewForm("Change password", false)
	case adminModeConfirmDelete:
		body = m.viewConfirm()
	case adminModeSummaries:
		body = m.viewSummaries()
	default:
		body = m.viewList()
	}

	header := m.theme.Header.Width(m.width).Render(
		m.theme.Title.Render("Administrators"),
	)

	status := ""
	switch {
	case m.busy:
		status = m.theme.Muted.Render("Working...")
	case m.errText != "":
		status = m.theme.Error.Render(m.errText)
	case m.notice != "":
		status = m.theme.Success.Render(m.notice)
	default:
		status = m.theme.ShortcutKey.Render("n") + m.theme.ShortcutDesc.Render(" new  ") +
			m.theme.ShortcutKey.Render("p") + m.theme.ShortcutDesc.Render(" password  ") +
			m.theme.ShortcutKey.Render("d") + m.theme.ShortcutDesc.Render(" delete  ") +
			m.theme.ShortcutKey.Render("s") + m.theme.ShortcutDesc.Render(" summaries  ") +
			m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" refresh  ") +
			m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" back")
	}
	statusBar := m.theme.StatusBar.Width(m.width).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m adminsModel) viewList() string {
	var b strings.Builder
	admins := m.mgr.Admins()
	if len(admins) == 0 {
		b.WriteString(m.theme.Muted.Render("No administrators loaded. Press r to refresh."))
	}
	for i, a := range admins {
		line := fmt.Sprintf("%-24s %s", a.Username, m.theme.Muted.Render(a.ID))
		if i == m.selected {
			b.WriteString(m.theme.ListSelected.Render(line))
		} else {
			b.WriteString(m.theme.ListItem.Render(line))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Height(m.height - 3).Render(b.String())
}

func (m adminsModel) viewForm(title string, withName bool) string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")

	if withName {
		nameStyle := m.theme.FieldBlurred
		if m.formFocus == 0 {
			nameStyle = m.theme.FieldFocused
		}
		b.WriteString(m.theme.Label.Render("Username"))
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(m.nameInput.View()))
		b.WriteString("\n")
	} else if admins := m.mgr.Admins(); len(admins) > 0 {
		b.WriteString(m.theme.Label.Render("Account: " + admins[m.selected].Username))
		b.WriteString("\n")
	}

	passStyle := m.theme.FieldBlurred
	if !withName || m.formFocus == 1 {
		passStyle = m.theme.FieldFocused
	}
	b.WriteString(m.theme.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(passStyle.Render(m.passInput.View()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Muted.Render("enter to submit, esc to cancel"))

	return lipgloss.NewStyle().Padding(1, 2).Height(m.height - 3).Render(b.String())
}

func (m adminsModel) viewConfirm() string {
	target := m.mgr.PendingDelete()
	text := m.theme.Warning.Render(fmt.Sprintf("Delete administrator %q?", target)) +
		"\n\n" +
		m.theme.Muted.Render("y to confirm, n to cancel")
	return lipgloss.NewStyle().Padding(1, 2).Height(m.height - 3).Render(text)
}

func (m adminsModel) viewSummaries() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Files for " + m.summariesFor))
	b.WriteString("\n\n")

	if len(m.files) == 0 {
		b.WriteString(m.theme.Muted.Render("No uploaded files."))
		b.WriteString("\n")
	}
	for _, f := range m.files {
		line := f.Filename
		if !f.UploadedAt.IsZero() {
			line += m.theme.Muted.Render("  " + f.UploadedAt.Format("2006-01-02 15:04"))
		}
		b.WriteString(m.theme.ListItem.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.theme.Title.Render("Summaries"))
	b.WriteString("\n\n")
	if len(m.summaries) == 0 {
		b.WriteString(m.theme.Muted.Render("No stored summaries."))
		b.WriteString("\n")
	}
	for _, s := range m.summaries {
		b.WriteString(m.theme.Label.Render(s.Filename))
		b.WriteString("\n")
		b.WriteString(s.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString(m.theme.Muted.Render("esc to go back"))
	return lipgloss.NewStyle().Padding(1, 2).Height(m.height - 3).Render(b.String())
}
