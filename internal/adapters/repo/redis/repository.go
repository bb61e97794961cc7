package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	URLKey        = "storage.redis_url"
	PrefixKey     = "storage.redis_prefix"
	defaultURL    = "redis://localhost:6379/0"
	defaultPrefix = "subtrack:"
	pingTimeout   = 5 * time.Second
)

// Repository stores each user's record set as one JSON string value under
// <prefix>subscriptions_<user>.
type Repository struct {
	client *goredis.Client
	prefix string
	logger *zap.Logger
}

var _ ports.SubscriptionRepository = (*Repository)(nil)

func NewRepository(ctx context.Context, cfg *viper.Viper, logger *zap.Logger) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.SetDefault(URLKey, defaultURL)
	cfg.SetDefault(PrefixKey, defaultPrefix)

	opt, err := goredis.ParseURL(cfg.GetString(URLKey))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Debug("redis repository ready", zap.String("addr", opt.Addr), zap.Int("db", opt.DB))
	return New(client, cfg.GetString(PrefixKey), logger), nil
}

// New wraps an existing client.
func New(client *goredis.Client, prefix string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Repository{client: client, prefix: prefix, logger: logger}
}

func (r *Repository) key(user domain.UserID) string {
	return r.prefix + record.Key(user)
}

func (r *Repository) Load(ctx context.Context, user domain.UserID) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := r.client.Get(ctx, r.key(user)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriptions: %w", err)
	}

	subscriptions, err := record.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("decode subscriptions of %s: %w", user, err)
	}

	return subscriptions, nil
}

func (r *Repository) Save(ctx context.Context, user domain.UserID, subscriptions domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := record.Marshal(subscriptions)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(user), payload, 0).Err(); err != nil {
		return fmt.Errorf("set subscriptions: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.client.Close()
}
