package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chat-widget/internal/domain"
)

// chromeHeight son las lineas debajo del historial: pie e input.
const chromeHeight = 2

// Styles agrupa los estilos lipgloss de la vista.
type Styles struct {
	User   lipgloss.Style
	Bot    lipgloss.Style
	Text   lipgloss.Style
	Footer lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		User:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bot:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Text:   lipgloss.NewStyle().PaddingLeft(2),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return sb.String()
}

func (m Model) renderHistory() string {
	var sb strings.Builder
	for _, msg := range m.conv.Messages() {
		label := m.styles.Bot.Render("Bot")
		if msg.Sender == domain.SenderUser {
			label = m.styles.User.Render("You")
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(m.styles.Text.Render(msg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// renderFooter muestra las teclas, o cuantas respuestas faltan.
func (m Model) renderFooter() string {
	switch n := m.conv.Pending(); n {
	case 0:
		return m.styles.Footer.Render("enter: send · pgup/pgdn: scroll · esc: quit")
	case 1:
		return m.styles.Footer.Render("waiting for 1 reply...")
	default:
		return m.styles.Footer.Render(fmt.Sprintf("waiting for %d replies...", n))
	}
}
