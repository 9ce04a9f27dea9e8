package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/babyregalo/internal/state"
)

// renderHeader renders the status bar: baby name, counts, origin and the
// latest notice.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	claimed := len(m.snapshot.Claimed())
	free := len(m.snapshot.Gifts) - claimed

	parts := []string{
		bg.Render("babyregalo", styles.Logo),
		bg.Render(truncate(m.snapshot.Settings.BabyName, 30), styles.Text.Bold(true)),
		bg.Render("Libres:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", free), lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColors[statusAvailable]))),
		bg.Render("Elegidos:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", claimed), lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColors[statusClaimed]))),
	}

	if m.currentView == ViewOrganizer {
		parts = append(parts, styles.StatusStyle(statusOrganizer).Render("ORGANIZADOR"))
	}

	if !compact && m.session != nil && m.session.Source() == state.SourceLink {
		parts = append(parts, bg.Render("desde enlace compartido", styles.InfoText))
	}

	switch {
	case m.notice != "" && m.noticeWarn:
		parts = append(parts, bg.Render(truncate(m.notice, 50), styles.WarningText))
	case m.notice != "" && m.noticeErr:
		parts = append(parts, bg.Render(truncate(m.notice, 50), styles.DangerText))
	case m.notice != "":
		parts = append(parts, bg.Render(truncate(m.notice, 50), styles.SuccessText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.currentView == ViewOrganizer && m.focus == focusReservations:
		commands = []cmd{
			{"j/k", "Navegar"},
			{"r", "Liberar"},
			{"Tab", "Campo"},
			{"ctrl+y", "Copiar enlace"},
			{"Esc", "Salir"},
			{"?", "Ayuda"},
		}
	case m.currentView == ViewOrganizer:
		commands = []cmd{
			{"Tab", "Campo"},
			{"ctrl+s", "Guardar lista"},
			{"ctrl+y", "Copiar enlace"},
			{"Esc", "Salir"},
		}
		if m.focus != focusList {
			commands = append(commands, cmd{"Enter", "Guardar ajustes"})
		}
	case m.searchActive:
		commands = []cmd{
			{"Enter", "Aplicar"},
			{"Esc", "Cancelar"},
		}
	default:
		commands = []cmd{
			{"f", m.filter.Label()}, // current filter
			{"/", "Buscar"},
			{"Enter", "Reservar"},
			{"r", "¿Fui yo?"},
			{"w", "WhatsApp"},
			{"j/k", "Navegar"},
			{"a", "Organizar"},
			{"?", "Ayuda"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.copied {
		segments = append(segments, bg.Render("¡Copiado!", styles.SuccessText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

// renderTitledBox renders content in a box with the title embedded in the top border:
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := maxInt(width-2, 0)
	title = truncate(title, maxInt(innerWidth-4, 0))
	titleLen := runewidth.StringWidth(title)
	leftPad := maxInt((innerWidth-titleLen-2)/2, 0)
	rightPad := maxInt(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, maxInt(boxHeight, 0))
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
