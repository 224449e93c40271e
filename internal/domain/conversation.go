package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Submission representa un envio iniciado que espera respuesta del endpoint.
type Submission struct {
	RequestID string `json:"request_id"`
	Query     string `json:"query"`
}

// Conversation es el estado de la vista de chat: el borrador actual y la
// lista ordenada de mensajes. La lista solo crece.
//
// No es segura para uso concurrente; ver service.ChatSession.
type Conversation struct {
	draft    string
	messages []Message
	pending  map[string]struct{}
}

func NewConversation() *Conversation {
	return &Conversation{
		messages: []Message{},
		pending:  make(map[string]struct{}),
	}
}

// Draft devuelve el borrador actual.
func (c *Conversation) Draft() string {
	return c.draft
}

// SetDraft reemplaza el borrador sin validar.
func (c *Conversation) SetDraft(text string) {
	c.draft = text
}

// Begin agrega el mensaje del usuario y limpia el borrador. Si el borrador
// esta vacio o solo tiene espacios no hace nada y devuelve false.
func (c *Conversation) Begin() (Submission, bool) {
	if strings.TrimSpace(c.draft) == "" {
		return Submission{}, false
	}
	sub := Submission{
		RequestID: uuid.NewString(),
		Query:     c.draft,
	}
	c.messages = append(c.messages, Message{
		Sender:    SenderUser,
		Text:      sub.Query,
		RequestID: sub.RequestID,
	})
	c.pending[sub.RequestID] = struct{}{}
	c.draft = ""
	return sub, true
}

// Resolve agrega exactamente un mensaje del bot para sub: la respuesta si
// err es nil, FallbackText en otro caso. Las respuestas se agregan en orden
// de llegada. Resolver dos veces el mismo envio es un no-op.
func (c *Conversation) Resolve(sub Submission, reply string, err error) Message {
	if _, ok := c.pending[sub.RequestID]; !ok {
		return Message{}
	}
	delete(c.pending, sub.RequestID)

	text := reply
	if err != nil {
		text = FallbackText
	}
	msg := Message{
		Sender:    SenderBot,
		Text:      text,
		RequestID: sub.RequestID,
	}
	c.messages = append(c.messages, msg)
	return msg
}

// Messages devuelve una copia de la lista de mensajes.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending devuelve cuantos envios siguen sin respuesta.
func (c *Conversation) Pending() int {
	return len(c.pending)
}
