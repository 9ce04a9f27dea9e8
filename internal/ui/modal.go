package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/babyregalo/internal/registry"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// claimModal asks a guest for their name before reserving a gift.
type claimModal struct {
	gift  registry.Gift
	input textinput.Model
	err   string
}

func newClaimModal(gift registry.Gift) claimModal {
	in := textinput.New()
	in.Placeholder = "Tu nombre"
	in.CharLimit = GuestNameLimit
	in.Width = 30
	in.Focus()
	return claimModal{gift: gift, input: in}
}

func (c claimModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return c, nil, true
		case key.Matches(km, keys.Confirm):
			guest := strings.TrimSpace(c.input.Value())
			if guest == "" {
				c.err = "Escribe tu nombre para reservar"
				return c, nil, false
			}
			id := c.gift.ID
			return c, func() tea.Msg { return claimRequestMsg{id: id, guest: guest} }, true
		}
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd, false
}

func (c claimModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Reservar regalo"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render(truncate(c.gift.Name, 40)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(c.gift.Description))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Nombre: "))
	b.WriteString(c.input.View())
	b.WriteString("\n\n")
	if c.err != "" {
		b.WriteString(styles.DangerText.Render(c.err))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: Reservar  •  Esc: Cancelar"))

	return placeModal(theme, width, height, 50, b.String())
}

// pinModal gates the organizer view behind the shared PIN.
type pinModal struct {
	pin   string
	input textinput.Model
	err   string
}

func newPINModal(pin string) pinModal {
	in := textinput.New()
	in.Placeholder = "PIN"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.CharLimit = PINLimit
	in.Width = 12
	in.Focus()
	return pinModal{pin: pin, input: in}
}

func (p pinModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			if strings.TrimSpace(p.input.Value()) != p.pin {
				p.err = "PIN incorrecto"
				p.input.SetValue("")
				return p, nil, false
			}
			return p, func() tea.Msg { return pinAcceptedMsg{} }, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p pinModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Modo organizador"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("PIN: "))
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if p.err != "" {
		b.WriteString(styles.DangerText.Render(p.err))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: Entrar  •  Esc: Cancelar"))

	return placeModal(theme, width, height, 40, b.String())
}

// placeModal centers content in a rounded box over the screen.
func placeModal(theme Theme, width, height, modalWidth int, content string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
