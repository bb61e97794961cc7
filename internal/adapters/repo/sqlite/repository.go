package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	PathKey   = "storage.sqlite_path"
	dataDir   = ".subtrack"
	dataFile  = "subtrack.db"
	dirMode   = 0o700
	dsnPragma = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
)

const schema = `CREATE TABLE IF NOT EXISTS subscription_sets (
	user_key   TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Repository stores each user's record set as one JSON row.
type Repository struct {
	db     *sql.DB
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

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(PathKey, filepath.Join(homeDir, dataDir, dataFile))

	path := cfg.GetString(PathKey)
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	return Open(ctx, path, logger)
}

// Open connects to the database at path, creating it and its table if needed.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&" + dsnPragma
	} else {
		dsn += "?" + dsnPragma
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	logger.Debug("sqlite repository ready", zap.String("path", path))
	return &Repository{db: db, logger: logger}, nil
}

func (r *Repository) Load(ctx context.Context, user domain.UserID) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM subscription_sets WHERE user_key = ?`,
		record.Key(user),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}

	subscriptions, err := record.Unmarshal([]byte(payload))
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

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO subscription_sets (user_key, user_id, payload, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		record.Key(user), string(user), string(payload),
	)
	if err != nil {
		return fmt.Errorf("upsert subscriptions: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
