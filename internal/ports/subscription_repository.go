package ports

import (
	"context"

	"github.com/bnema/subtrack/internal/domain"
)

// SubscriptionRepository stores one record set per user. Load returns an empty
// collection when nothing is stored; Save replaces the whole set.
type SubscriptionRepository interface {
	Load(ctx context.Context, user domain.UserID) (domain.Collection, error)
	Save(ctx context.Context, user domain.UserID, subscriptions domain.Collection) error
}
