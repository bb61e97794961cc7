package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	storeDirMode   = 0o700
	sessionFileMod = 0o600
)

type sessionSchema struct {
	UserID    string `toml:"user_id"`
	StartedAt string `toml:"started_at"`
}

// Store keeps the current session in a small TOML file.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Start(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !session.Valid() {
		return &domain.ValidationError{Field: "user", Reason: "user is required"}
	}

	data, err := toml.Marshal(sessionSchema{
		UserID:    string(session.UserID),
		StartedAt: session.StartedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, sessionFileMod); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

func (s *Store) Current(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, domain.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var stored sessionSchema
	if err := toml.Unmarshal(data, &stored); err != nil {
		return domain.Session{}, fmt.Errorf("decode session file: %w", err)
	}
	if strings.TrimSpace(stored.UserID) == "" {
		return domain.Session{}, domain.ErrNoSession
	}

	session := domain.Session{UserID: domain.UserID(stored.UserID)}
	if stored.StartedAt != "" {
		startedAt, err := time.Parse(time.RFC3339Nano, stored.StartedAt)
		if err != nil {
			return domain.Session{}, fmt.Errorf("decode session file: %w", err)
		}
		session.StartedAt = startedAt
	}

	return session, nil
}

// End removes the session file. Ending without a session is not an error.
func (s *Store) End(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session file: %w", err)
	}

	return nil
}
