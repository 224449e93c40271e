package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/query"
)

var (
	ErrSessionServiceNotConfigured = errors.New("session service not configured")
	ErrSessionNotFound             = errors.New("session not found")
)

// SessionService mantiene en memoria las sesiones de chat activas. Nada se
// persiste: reiniciar el proceso pierde todas las sesiones.
type SessionService struct {
	client query.Client
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

func NewSessionService(client query.Client, ttl time.Duration, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		client:   client,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		sessions: make(map[string]*ChatSession),
	}
}

// Create abre una sesion nueva con borrador y lista vacios.
func (s *SessionService) Create() (*ChatSession, error) {
	if s == nil || s.client == nil {
		return nil, ErrSessionServiceNotConfigured
	}
	sess := NewChatSession(uuid.NewString(), s.client, s.now().Add(s.ttl), s.logger)
	sess.OnChange(func(snap domain.SessionSnapshot) {
		s.logger.Debug("session state changed",
			zap.String("session_id", snap.ID),
			zap.Int("messages", len(snap.Messages)),
			zap.Int("pending", snap.Pending),
			zap.Int("draft_len", len(snap.Draft)),
		)
	})

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("session_id", sess.ID()))
	return sess, nil
}

// Get devuelve la sesion si existe y no expiro.
func (s *SessionService) Get(id string) (*ChatSession, error) {
	if s == nil {
		return nil, ErrSessionServiceNotConfigured
	}
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.now().After(sess.ExpiresAt()) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close quita la sesion del registro. Las consultas en curso no se cancelan;
// sus respuestas se agregan a una sesion que ya nadie consulta.
func (s *SessionService) Close(id string) error {
	if s == nil {
		return ErrSessionServiceNotConfigured
	}
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

// Prune elimina las sesiones expiradas y devuelve cuantas quito.
func (s *SessionService) Prune() int {
	if s == nil {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt()) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Count devuelve la cantidad de sesiones registradas.
func (s *SessionService) Count() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunPruner ejecuta Prune cada interval hasta que ctx termine.
func (s *SessionService) RunPruner(ctx context.Context, interval time.Duration) {
	if s == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				s.logger.Info("expired sessions pruned",
					zap.Int("count", n),
					zap.Int("remaining", s.Count()),
				)
			}
		}
	}
}

// Wait bloquea hasta que las sesiones registradas no tengan envios en curso.
// Las sesiones ya cerradas o expiradas no se esperan.
func (s *SessionService) Wait() {
	if s == nil {
		return
	}
	s.mu.Lock()
	sessions := make([]*ChatSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Wait()
	}
}

// Drain espera como Wait pero se rinde cuando ctx termina. Se usa al apagar
// el servidor para dejar llegar las respuestas pendientes.
func (s *SessionService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
