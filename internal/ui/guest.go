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

// visibleGifts returns the gifts shown under the current filter and search.
func (m Model) visibleGifts() []registry.Gift {
	return m.snapshot.Visible(m.filter, m.searchInput.Value())
}

// selectedGift returns the highlighted gift, if any.
func (m Model) selectedGift() (registry.Gift, bool) {
	gifts := m.visibleGifts()
	if m.selectedRow < 0 || m.selectedRow >= len(gifts) {
		return registry.Gift{}, false
	}
	return gifts[m.selectedRow], true
}

// clampSelection keeps both list cursors inside their lists.
func (m *Model) clampSelection() {
	if n := len(m.visibleGifts()); m.selectedRow >= n {
		m.selectedRow = maxInt(n-1, 0)
	}
	if n := len(m.snapshot.Claimed()); m.reservedRow >= n {
		m.reservedRow = maxInt(n-1, 0)
	}
}

// handleGuestKey processes keyboard input for the guest view.
func (m Model) handleGuestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}

	count := len(m.visibleGifts())

	switch {
	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = m.filter.Next()
		m.selectedRow = 0
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchActive = true
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		// Clear an applied search
		m.searchInput.SetValue("")
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Organizer):
		m.modal = newPINModal(m.adminPIN)
		return m, nil

	case key.Matches(msg, m.keys.Claim):
		gift, ok := m.selectedGift()
		if !ok || gift.IsClaimed {
			return m, nil
		}
		m.modal = newClaimModal(gift)
		return m, nil

	case key.Matches(msg, m.keys.Release):
		gift, ok := m.selectedGift()
		if !ok || !gift.IsClaimed {
			return m, nil
		}
		notice := fmt.Sprintf("%q vuelve a estar libre", gift.Name)
		return m, m.applyCmd(mutationMsg{notice: notice}, func(s registry.Snapshot) registry.Snapshot {
			return s.Release(gift.ID)
		})

	case key.Matches(msg, m.keys.Notify):
		gift, ok := m.selectedGift()
		if !ok || !gift.IsClaimed {
			return m, nil
		}
		url := share.WhatsAppURL(m.snapshot.Settings.HostPhone, gift.ClaimedBy, gift.Name)
		return m, copyCmd(m.clipboard, url, "Mensaje de WhatsApp")

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = maxInt(count-1, 0)
	}

	return m, nil
}

// handleSearchInput filters the list as the guest types.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searchActive = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.clampSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.selectedRow = 0
	return m, cmd
}

// claimCmd reserves a gift and, when the host left a phone, queues the
// WhatsApp notice for the clipboard.
func (m Model) claimCmd(id, guest string) tea.Cmd {
	gift, ok := m.snapshot.Find(id)
	if !ok {
		return nil
	}
	msg := mutationMsg{notice: fmt.Sprintf("¡Gracias %s! Reservaste %q", guest, gift.Name)}
	if strings.TrimSpace(m.snapshot.Settings.HostPhone) != "" {
		msg.notify = share.WhatsAppURL(m.snapshot.Settings.HostPhone, guest, gift.Name)
	}
	return m.applyCmd(msg, func(s registry.Snapshot) registry.Snapshot {
		return s.Claim(id, guest)
	})
}

// renderGuest renders the gift list with the optional search line.
func (m Model) renderGuest() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // header + command bar

	if len(m.snapshot.Gifts) == 0 {
		empty := styles.MutedText.Render("Aún no hay regalos. Pulsa a para organizar la lista.")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	var searchLine string
	if m.searchActive || m.searchInput.Value() != "" {
		searchLine = m.searchInput.View()
		contentHeight--
	}

	title := "Regalos · " + m.filter.Label()
	list := m.renderGiftRows(m.width-2, contentHeight-2)
	box := m.renderTitledBox(title, list, m.width, contentHeight, true)
	if searchLine == "" {
		return box
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(searchLine) + "\n" + box
}

// renderGiftRows renders the visible window of gifts.
func (m Model) renderGiftRows(width, height int) string {
	gifts := m.visibleGifts()
	if len(gifts) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(m.theme.FocusBg)).
			Render("Ningún regalo coincide")
	}

	start := scrollStart(m.selectedRow, len(gifts), height)
	end := min(start+height, len(gifts))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		bgColor := m.theme.FocusBg
		if i == m.selectedRow {
			bgColor = m.theme.SelectionBg
		}
		content := m.formatGiftRow(gifts[i], width, bgColor, i == m.selectedRow)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatGiftRow formats "[Libre] Name  description" or
// "[Elegido] Name  por Guest".
func (m Model) formatGiftRow(g registry.Gift, width int, bgColor string, selected bool) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	chip := styles.StatusStyle(statusAvailable).Render(padRight("Libre", 7))
	if g.IsClaimed {
		chip = styles.StatusStyle(statusClaimed).Render(padRight("Elegido", 7))
	}

	nameStyle := styles.Text
	detailStyle := styles.MutedText
	if selected {
		nameStyle = nameStyle.Foreground(lipgloss.Color(m.theme.SelectionText)).Bold(true)
		detailStyle = detailStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	detail := g.Description
	if g.IsClaimed {
		detail = "por " + g.ClaimedBy
	}

	// chip (9 cells) + spaces
	avail := maxInt(width-12, 8)
	nameWidth := min(maxInt(avail/2, 8), 40)
	name := padRight(truncate(g.Name, nameWidth), nameWidth)
	detail = truncate(detail, maxInt(avail-nameWidth, 0))

	return bg.Space() + chip + bg.Space() + bg.Render(name, nameStyle) + bg.Spaces(2) + bg.Render(detail, detailStyle)
}

// scrollStart returns the first row of a window of height rows that keeps
// selected visible.
func scrollStart(selected, total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	start := selected - height + 1
	if start < 0 {
		return 0
	}
	return min(start, total-height)
}
