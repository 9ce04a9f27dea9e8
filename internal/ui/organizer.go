package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/share"
)

// enterOrganizer switches to the organizer view with the form filled from
// the current snapshot.
func (m *Model) enterOrganizer() tea.Cmd {
	m.currentView = ViewOrganizer
	m.searchActive = false
	m.searchInput.Blur()
	m.fillOrganizerForm()
	m.focus = focusList
	return m.applyFocus()
}

// leaveOrganizer returns to the guest view.
func (m *Model) leaveOrganizer() {
	m.currentView = ViewGuest
	m.babyInput.Blur()
	m.phoneInput.Blur()
	m.listArea.Blur()
	m.clampSelection()
}

// fillOrganizerForm loads settings and gift names into the editors.
func (m *Model) fillOrganizerForm() {
	m.babyInput.SetValue(m.snapshot.Settings.BabyName)
	m.phoneInput.SetValue(m.snapshot.Settings.HostPhone)
	m.listArea.SetValue(strings.Join(m.snapshot.Names(), "\n"))
	m.clampSelection()
}

// applyFocus focuses the editor matching m.focus and blurs the rest.
func (m *Model) applyFocus() tea.Cmd {
	m.babyInput.Blur()
	m.phoneInput.Blur()
	m.listArea.Blur()
	switch m.focus {
	case focusBabyName:
		return m.babyInput.Focus()
	case focusPhone:
		return m.phoneInput.Focus()
	case focusList:
		return m.listArea.Focus()
	}
	return nil
}

func (m *Model) resizeOrganizer() {
	width := m.width - 4
	if m.width >= LayoutWideWidth {
		width = m.width*60/100 - 4
	}
	m.listArea.SetWidth(maxInt(width, 20))
	// header, command bar, box borders, two settings lines and spacing
	m.listArea.SetHeight(maxInt(m.height-12, 3))
}

// handleOrganizerKey processes keyboard input for the organizer view.
func (m Model) handleOrganizerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.leaveOrganizer()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % organizerFocusCount
		cmd := m.applyFocus()
		return m, cmd

	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + organizerFocusCount - 1) % organizerFocusCount
		cmd := m.applyFocus()
		return m, cmd

	case key.Matches(msg, m.keys.SaveList):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.CopyLink):
		return m.copyShareLink()
	}

	switch m.focus {
	case focusBabyName, focusPhone:
		if key.Matches(msg, m.keys.Confirm) {
			return m, m.settingsCmd()
		}
		if key.Matches(msg, m.keys.ClearForm) {
			m.focusedInputClear()
			return m, nil
		}
		var cmd tea.Cmd
		if m.focus == focusBabyName {
			m.babyInput, cmd = m.babyInput.Update(msg)
		} else {
			m.phoneInput, cmd = m.phoneInput.Update(msg)
		}
		return m, cmd

	case focusList:
		var cmd tea.Cmd
		m.listArea, cmd = m.listArea.Update(msg)
		return m, cmd
	}

	return m.handleReservationsKey(msg)
}

func (m *Model) focusedInputClear() {
	switch m.focus {
	case focusBabyName:
		m.babyInput.SetValue("")
	case focusPhone:
		m.phoneInput.SetValue("")
	}
}

// handleReservationsKey navigates and releases reserved gifts.
func (m Model) handleReservationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}

	claimed := m.snapshot.Claimed()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.reservedRow < len(claimed)-1 {
			m.reservedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.reservedRow > 0 {
			m.reservedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.reservedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.reservedRow = maxInt(len(claimed)-1, 0)
	case key.Matches(msg, m.keys.Release):
		if m.reservedRow >= len(claimed) {
			return m, nil
		}
		gift := claimed[m.reservedRow]
		notice := fmt.Sprintf("%q vuelve a estar libre", gift.Name)
		return m, m.applyCmd(mutationMsg{notice: notice}, func(s registry.Snapshot) registry.Snapshot {
			return s.Release(gift.ID)
		})
	}
	return m, nil
}

// settingsPatch reads both settings editors.
func (m Model) settingsPatch() registry.SettingsPatch {
	baby := strings.TrimSpace(m.babyInput.Value())
	phone := strings.TrimSpace(m.phoneInput.Value())
	return registry.SettingsPatch{BabyName: &baby, HostPhone: &phone}
}

func (m Model) settingsCmd() tea.Cmd {
	patch := m.settingsPatch()
	return m.applyCmd(mutationMsg{notice: "Ajustes guardados"}, func(s registry.Snapshot) registry.Snapshot {
		return s.UpdateSettings(patch)
	})
}

// saveCmd stores the settings and replaces the list in one change. An empty
// list is rejected without touching the session.
func (m Model) saveCmd() tea.Cmd {
	lines := registry.SplitLines(m.listArea.Value())
	if err := registry.ValidateLines(lines); err != nil {
		return func() tea.Msg { return mutationMsg{err: err} }
	}
	patch := m.settingsPatch()
	msg := mutationMsg{notice: fmt.Sprintf("Lista guardada: %d regalos", len(lines)), resetForm: true}
	return m.applyCmd(msg, func(s registry.Snapshot) registry.Snapshot {
		return s.UpdateSettings(patch).ReplaceList(lines, nil)
	})
}

// copyShareLink copies the share link for the saved registry.
func (m Model) copyShareLink() (tea.Model, tea.Cmd) {
	link, err := share.Link(m.shareBaseURL, m.snapshot)
	if err != nil {
		m.setNotice(describeError(err), true)
		return m, m.noticeTimeout()
	}
	return m, copyCmd(m.clipboard, link, "Enlace")
}

// renderOrganizer renders the editors beside (or above) the reservations.
func (m Model) renderOrganizer() string {
	contentHeight := m.height - 2 // header + command bar

	if m.width < LayoutWideWidth {
		editorHeight := contentHeight * 65 / 100
		editor := m.renderTitledBox("Organizar lista", m.renderEditor(), m.width, editorHeight, m.focus != focusReservations)
		reserved := m.renderTitledBox(m.reservationsTitle(), m.renderReservations(m.width-2), m.width, contentHeight-editorHeight, m.focus == focusReservations)
		return lipgloss.JoinVertical(lipgloss.Left, editor, reserved)
	}

	editorWidth := m.width * 60 / 100
	reservedWidth := m.width - editorWidth
	editor := m.renderTitledBox("Organizar lista", m.renderEditor(), editorWidth, contentHeight, m.focus != focusReservations)
	reserved := m.renderTitledBox(m.reservationsTitle(), m.renderReservations(reservedWidth-2), reservedWidth, contentHeight, m.focus == focusReservations)
	return lipgloss.JoinHorizontal(lipgloss.Top, editor, reserved)
}

func (m Model) reservationsTitle() string {
	return fmt.Sprintf("Reservas (%d)", len(m.snapshot.Claimed()))
}

func (m Model) renderEditor() string {
	styles := m.theme.Styles()
	label := func(text string, focused bool) string {
		if focused {
			return styles.AccentText.Render(padRight(text, 10))
		}
		return styles.MutedText.Render(padRight(text, 10))
	}

	var b strings.Builder
	b.WriteString(label("Bebé:", m.focus == focusBabyName))
	b.WriteString(m.babyInput.View())
	b.WriteString("\n")
	b.WriteString(label("WhatsApp:", m.focus == focusPhone))
	b.WriteString(m.phoneInput.View())
	b.WriteString("\n\n")
	b.WriteString(label("Regalos:", m.focus == focusList))
	b.WriteString("\n")
	b.WriteString(m.listArea.View())
	return b.String()
}

func (m Model) renderReservations(width int) string {
	styles := m.theme.Styles()
	claimed := m.snapshot.Claimed()
	if len(claimed) == 0 {
		return styles.MutedText.Render("Nadie ha reservado todavía")
	}

	lines := make([]string, 0, len(claimed))
	for i, g := range claimed {
		row := truncate(g.Name, maxInt(width/2, 8)) + " · " + truncate(g.ClaimedBy, maxInt(width/2-4, 4))
		if i == m.reservedRow && m.focus == focusReservations {
			lines = append(lines, styles.Selected.Width(width).Render(row))
			continue
		}
		lines = append(lines, styles.Text.Render(row))
	}
	return strings.Join(lines, "\n")
}
