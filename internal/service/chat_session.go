package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/query"
)

// ChatSession envuelve una Conversation para uso concurrente y ejecuta las
// consultas de cada envio en segundo plano.
type ChatSession struct {
	id        string
	expiresAt time.Time
	client    query.Client
	logger    *zap.Logger

	mu       sync.Mutex
	conv     *domain.Conversation
	onChange func(domain.SessionSnapshot)

	inflight sync.WaitGroup
}

func NewChatSession(id string, client query.Client, expiresAt time.Time, logger *zap.Logger) *ChatSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatSession{
		id:        id,
		expiresAt: expiresAt,
		client:    client,
		logger:    logger,
		conv:      domain.NewConversation(),
	}
}

func (s *ChatSession) ID() string {
	return s.id
}

func (s *ChatSession) ExpiresAt() time.Time {
	return s.expiresAt
}

// OnChange registra una funcion que se llama despues de cada cambio de estado.
// Se invoca fuera del lock: si un SetDraft y una respuesta ocurren a la vez,
// las notificaciones pueden llegar en otro orden que los cambios. Snapshot
// siempre devuelve el estado actual.
func (s *ChatSession) OnChange(fn func(domain.SessionSnapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetDraft reemplaza el borrador.
func (s *ChatSession) SetDraft(text string) domain.SessionSnapshot {
	s.mu.Lock()
	s.conv.SetDraft(text)
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap
}

// Submit envia el borrador actual. Devuelve false si el borrador esta vacio.
// El mensaje del usuario se agrega y el borrador se limpia antes de que la
// consulta termine; la respuesta se agrega cuando llega.
func (s *ChatSession) Submit() (domain.Submission, bool) {
	s.mu.Lock()
	sub, ok := s.conv.Begin()
	if !ok {
		s.mu.Unlock()
		return domain.Submission{}, false
	}
	snap, fn := s.snapshotLocked(), s.onChange
	s.inflight.Add(1)
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}

	go s.run(sub)
	return sub, true
}

// run no hereda contexto del llamador: cerrar la sesion no cancela consultas
// en curso.
func (s *ChatSession) run(sub domain.Submission) {
	defer s.inflight.Done()

	var (
		reply string
		err   error
	)
	if s.client == nil {
		err = query.ErrQueryFailed
	} else {
		reply, err = s.client.Query(context.Background(), sub.Query)
	}
	if err != nil {
		s.logger.Debug("query failed",
			zap.String("session_id", s.id),
			zap.String("request_id", sub.RequestID),
			zap.Error(err),
		)
	}

	s.mu.Lock()
	s.conv.Resolve(sub, reply, err)
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// Wait bloquea hasta que todos los envios en curso tengan respuesta.
func (s *ChatSession) Wait() {
	s.inflight.Wait()
}

func (s *ChatSession) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ChatSession) snapshotLocked() domain.SessionSnapshot {
	return domain.SessionSnapshot{
		ID:        s.id,
		Draft:     s.conv.Draft(),
		Messages:  s.conv.Messages(),
		Pending:   s.conv.Pending(),
		ExpiresAt: s.expiresAt,
	}
}
