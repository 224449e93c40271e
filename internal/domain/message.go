package domain

// Sender identifica quien emitio una linea del chat.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// FallbackText se muestra cuando una consulta falla, sin importar la causa.
const FallbackText = "An error occurred. Please try again later."

// Message es una linea del chat. No se modifica despues de creada.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	RequestID string `json:"request_id,omitempty"`
}
