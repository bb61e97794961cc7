package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DSNKey   = "storage.postgres_dsn"
	maxConns = 4
)

const schema = `CREATE TABLE IF NOT EXISTS subscription_sets (
	user_key   TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Repository stores each user's record set as one JSONB row.
type Repository struct {
	pool   *pgxpool.Pool
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

	dsn := cfg.GetString(DSNKey)
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	poolConfig.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}

	logger.Debug("postgres repository ready", zap.String("host", poolConfig.ConnConfig.Host), zap.String("database", poolConfig.ConnConfig.Database))
	return &Repository{pool: pool, logger: logger}, nil
}

func (r *Repository) Load(ctx context.Context, user domain.UserID) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload::text FROM subscription_sets WHERE user_key = $1`,
		record.Key(user),
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
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

	_, err = r.pool.Exec(ctx,
		`INSERT INTO subscription_sets (user_key, user_id, payload, updated_at)
		 VALUES ($1, $2, $3::jsonb, now())
		 ON CONFLICT (user_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		record.Key(user), string(user), string(payload),
	)
	if err != nil {
		return fmt.Errorf("upsert subscriptions: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
