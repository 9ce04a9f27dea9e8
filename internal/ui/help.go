package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Invitados",
			items: []helpItem{
				{"j/k", "Mover arriba/abajo"},
				{"g/G", "Inicio/fin"},
				{"f", "Todos/Libres/Elegidos"},
				{"/", "Buscar regalo"},
				{"enter", "Reservar regalo"},
				{"r", "Liberar mi reserva"},
				{"w", "Copiar aviso de WhatsApp"},
			},
		},
		{
			title: "Organizador",
			items: []helpItem{
				{"a", "Entrar con PIN"},
				{"tab", "Cambiar campo"},
				{"ctrl+s", "Guardar lista"},
				{"ctrl+y", "Copiar enlace"},
				{"r", "Liberar reserva"},
				{"esc", "Volver a la lista"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cambiar tema"},
				{"?", "Ayuda"},
				{"q/ctrl+c", "Salir"},
			},
		},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	var b strings.Builder

	// Title
	title := styles.Text.Bold(true).Render("Atajos de teclado")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		// Section title
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return placeModal(m.theme, m.width, m.height, 44, b.String())
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
