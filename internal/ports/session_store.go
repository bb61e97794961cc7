package ports

import (
	"context"

	"github.com/bnema/subtrack/internal/domain"
)

type SessionStore interface {
	Current(ctx context.Context) (domain.Session, error)
	Start(ctx context.Context, session domain.Session) error
	End(ctx context.Context) error
}
