// Package tui muestra una sesion de chat en la terminal con bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/query"
)

// Model es el modelo bubbletea de una sesion de chat. El input refleja el
// borrador de la conversacion; Enter lo envia.
type Model struct {
	conv     *domain.Conversation
	client   query.Client
	logger   *zap.Logger
	input    textinput.Model
	viewport viewport.Model
	styles   Styles
	width    int
	height   int
}

// replyMsg trae el resultado de un envio de vuelta a Update.
type replyMsg struct {
	sub   domain.Submission
	reply string
	err   error
}

func New(client query.Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	in := textinput.New()
	in.Placeholder = "Type a message..."
	in.Prompt = "> "
	in.Focus()

	return Model{
		conv:     domain.NewConversation(),
		client:   client,
		logger:   logger,
		input:    in,
		viewport: viewport.New(80, 20),
		styles:   DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			// Solo estas teclas desplazan el historial; el resto va al input
			// para que letras como "k" o "j" no muevan la vista.
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case replyMsg:
		m.conv.Resolve(msg.sub, msg.reply, msg.err)
		m.refresh()
		return m, nil
	}

	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.conv.SetDraft(m.input.Value())
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.viewport, vpCmd = m.viewport.Update(msg)
	}
	return m, tea.Batch(inputCmd, vpCmd)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, ok := m.conv.Begin()
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.refresh()
	return m, m.queryCmd(sub)
}

// queryCmd ejecuta la consulta fuera del loop de Update. Salir del programa
// no la cancela.
func (m Model) queryCmd(sub domain.Submission) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		if client == nil {
			return replyMsg{sub: sub, err: query.ErrQueryFailed}
		}
		reply, err := client.Query(context.Background(), sub.Query)
		if err != nil {
			logger.Debug("query failed", zap.String("request_id", sub.RequestID), zap.Error(err))
		}
		return replyMsg{sub: sub, reply: reply, err: err}
	}
}

func (m *Model) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height

	vpHeight := height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - len(m.input.Prompt) - 1
	m.refresh()
}

// refresh vuelve a pintar el historial y baja al ultimo mensaje.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

// Messages devuelve el historial mostrado.
func (m Model) Messages() []domain.Message {
	return m.conv.Messages()
}

func (m Model) Draft() string {
	return m.conv.Draft()
}

// Pending devuelve cuantos envios esperan respuesta.
func (m Model) Pending() int {
	return m.conv.Pending()
}
