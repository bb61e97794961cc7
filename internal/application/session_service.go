package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	"go.uber.org/zap"
)

// SessionService tracks which user the CLI acts for between invocations.
type SessionService struct {
	store  ports.SessionStore
	clock  ports.Clock
	logger *zap.Logger
}

func NewSessionService(store ports.SessionStore, clock ports.Clock, logger *zap.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionService{store: store, clock: clock, logger: logger}
}

func (s *SessionService) Start(ctx context.Context, user string) (domain.Session, error) {
	session, err := domain.NewSession(user, s.clock.Now())
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.store.Start(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("start session: %w", err)
	}

	s.logger.Debug("session started", zap.String("user", string(session.UserID)))
	return session, nil
}

func (s *SessionService) Current(ctx context.Context) (domain.Session, error) {
	session, err := s.store.Current(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("current session: %w", err)
	}
	if !session.Valid() {
		return domain.Session{}, domain.ErrNoSession
	}

	return session, nil
}

func (s *SessionService) End(ctx context.Context) error {
	if err := s.store.End(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	return nil
}

// Resolve prefers an explicit user over the stored session. The override is
// not persisted.
func (s *SessionService) Resolve(ctx context.Context, override string) (domain.Session, error) {
	if strings.TrimSpace(override) != "" {
		return domain.NewSession(override, s.clock.Now())
	}

	return s.Current(ctx)
}
