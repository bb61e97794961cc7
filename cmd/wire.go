package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/subtrack/internal/adapters/render/dashboard"
	"github.com/bnema/subtrack/internal/adapters/render/money"
	pgrepo "github.com/bnema/subtrack/internal/adapters/repo/postgres"
	redisrepo "github.com/bnema/subtrack/internal/adapters/repo/redis"
	sqliterepo "github.com/bnema/subtrack/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/subtrack/internal/adapters/repo/toml"
	sessionfile "github.com/bnema/subtrack/internal/adapters/session/file"
	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/config"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type rootOptions struct {
	user       string
	configPath string
	verbose    bool
}

type app struct {
	opts         rootOptions
	logger       *zap.Logger
	service      *application.Service
	sessions     *application.SessionService
	money        money.Formatter
	renderDash   func(application.DashboardView, dashboard.RenderOptions) (string, error)
	renderReport func(application.ReportView, dashboard.RenderOptions) (string, error)
	now          func() time.Time
	closeRepo    func() error
}

func (a *app) wire(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.GetString(config.LogLevelKey), a.opts.verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("wire subscription repository: %w", err)
	}

	clock := ports.SystemClock{}
	a.logger = logger
	a.service = application.NewService(repo, clock, ports.UUIDGenerator{}, logger)
	a.sessions = application.NewSessionService(sessionfile.NewStore(cfg.GetString(config.SessionPathKey)), clock, logger)
	a.money = money.New(cfg.GetString(config.CurrencyKey))
	a.renderDash = dashboard.Render
	a.renderReport = dashboard.RenderReport
	a.now = clock.Now
	a.closeRepo = closeRepo

	return nil
}

func (a *app) close() error {
	var err error
	if a.closeRepo != nil {
		err = a.closeRepo()
		a.closeRepo = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}

	return err
}

// session resolves the acting user: --user first, then the stored session.
func (a *app) session(ctx context.Context) (domain.Session, error) {
	session, err := a.sessions.Resolve(ctx, a.opts.user)
	if errors.Is(err, domain.ErrNoSession) {
		return domain.Session{}, fmt.Errorf("%w: run \"subtrack session start --user NAME\" or pass --user", err)
	}

	return session, err
}

func openRepository(ctx context.Context, cfg *viper.Viper, logger *zap.Logger) (ports.SubscriptionRepository, func() error, error) {
	driver, err := config.StorageDriver(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("opening subscription storage", zap.String("driver", string(driver)))

	switch driver {
	case config.DriverSQLite:
		repo, err := sqliterepo.NewRepository(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.DriverRedis:
		repo, err := redisrepo.NewRepository(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.DriverPostgres:
		repo, err := pgrepo.NewRepository(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		repo, err := tomlrepo.NewRepository(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	}
}
