package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const renewalDateLayout = "2006-01-02"

// Service runs the subscription lifecycle for one session at a time: load the
// user's record set, apply a pure transition, save the full set back.
type Service struct {
	repo     ports.SubscriptionRepository
	clock    ports.Clock
	ids      ports.IDGenerator
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(repo ports.SubscriptionRepository, clock ports.Clock, ids ports.IDGenerator, logger *zap.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:     repo,
		clock:    clock,
		ids:      ids,
		validate: newValidator(),
		logger:   logger,
	}
}

func (s *Service) CreateSubscription(ctx context.Context, session domain.Session, cmd CreateSubscriptionCommand) (domain.Subscription, error) {
	cmd.Type = strings.ToLower(strings.TrimSpace(cmd.Type))
	cmd.Amount = strings.TrimSpace(cmd.Amount)
	cmd.RenewalDate = strings.TrimSpace(cmd.RenewalDate)
	if err := validateCommand(s.validate, cmd); err != nil {
		return domain.Subscription{}, err
	}

	current, err := s.load(ctx, session)
	if err != nil {
		return domain.Subscription{}, err
	}

	input, err := newSubscriptionInput(cmd)
	if err != nil {
		return domain.Subscription{}, err
	}

	sub, err := domain.NewSubscription(domain.SubscriptionID(s.ids.NewID()), input, s.clock.Now())
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("create subscription: %w", err)
	}

	if err := s.save(ctx, session, current.Add(sub)); err != nil {
		return domain.Subscription{}, err
	}

	s.logger.Debug("subscription created",
		zap.String("user", string(session.UserID)),
		zap.String("subscription_id", string(sub.ID)),
		zap.String("amount", sub.Amount.String()),
	)

	return sub, nil
}

// Renewal dates are calendar dates and are kept at UTC midnight.
func newSubscriptionInput(cmd CreateSubscriptionCommand) (domain.NewSubscriptionInput, error) {
	amount, err := parseAmount(cmd.Amount)
	if err != nil {
		return domain.NewSubscriptionInput{}, err
	}

	typ := domain.TypePersonal
	if cmd.Type != "" {
		typ, err = domain.ParseType(cmd.Type)
		if err != nil {
			return domain.NewSubscriptionInput{}, err
		}
	}

	var renewal time.Time
	if cmd.RenewalDate != "" {
		renewal, err = time.Parse(renewalDateLayout, cmd.RenewalDate)
		if err != nil {
			return domain.NewSubscriptionInput{}, &domain.ValidationError{Field: "renewal_date", Reason: "renewal_date must be a date formatted YYYY-MM-DD"}
		}
	}

	return domain.NewSubscriptionInput{
		Name:          cmd.Name,
		Amount:        amount,
		Type:          typ,
		RenewalDate:   renewal,
		PaymentMethod: cmd.PaymentMethod,
	}, nil
}

func (s *Service) ChangeStatus(ctx context.Context, session domain.Session, cmd ChangeStatusCommand) (domain.Subscription, error) {
	cmd.Status = strings.ToLower(strings.TrimSpace(cmd.Status))
	if err := validateCommand(s.validate, cmd); err != nil {
		return domain.Subscription{}, err
	}

	current, err := s.load(ctx, session)
	if err != nil {
		return domain.Subscription{}, err
	}

	target, err := current.Resolve(cmd.Ref)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("resolve subscription: %w", err)
	}

	next, err := current.ChangeStatus(target.ID, domain.Status(cmd.Status), cmd.Note, s.clock.Now())
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("change status: %w", err)
	}

	if err := s.save(ctx, session, next); err != nil {
		return domain.Subscription{}, err
	}

	s.logger.Debug("subscription status changed",
		zap.String("user", string(session.UserID)),
		zap.String("subscription_id", string(target.ID)),
		zap.String("from", string(target.Status)),
		zap.String("to", cmd.Status),
	)

	return next.Get(target.ID)
}

func (s *Service) ChangePrice(ctx context.Context, session domain.Session, cmd ChangePriceCommand) (domain.Subscription, error) {
	cmd.Amount = strings.TrimSpace(cmd.Amount)
	if err := validateCommand(s.validate, cmd); err != nil {
		return domain.Subscription{}, err
	}

	amount, err := parseAmount(cmd.Amount)
	if err != nil {
		return domain.Subscription{}, err
	}

	current, err := s.load(ctx, session)
	if err != nil {
		return domain.Subscription{}, err
	}

	target, err := current.Resolve(cmd.Ref)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("resolve subscription: %w", err)
	}

	next, err := current.ChangePrice(target.ID, amount, cmd.Note, s.clock.Now())
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("change price: %w", err)
	}

	if err := s.save(ctx, session, next); err != nil {
		return domain.Subscription{}, err
	}

	s.logger.Debug("subscription price changed",
		zap.String("user", string(session.UserID)),
		zap.String("subscription_id", string(target.ID)),
		zap.String("from", target.Amount.String()),
		zap.String("to", amount.String()),
	)

	return next.Get(target.ID)
}

// DeleteSubscription removes the subscription ref points at. It reports false
// without touching storage when nothing matches.
func (s *Service) DeleteSubscription(ctx context.Context, session domain.Session, ref string) (bool, error) {
	current, err := s.load(ctx, session)
	if err != nil {
		return false, err
	}

	target, err := current.Resolve(ref)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			s.logger.Debug("delete skipped, no match", zap.String("user", string(session.UserID)), zap.String("ref", ref))
			return false, nil
		}
		return false, fmt.Errorf("resolve subscription: %w", err)
	}

	if err := s.save(ctx, session, current.Delete(target.ID)); err != nil {
		return false, err
	}

	s.logger.Debug("subscription deleted",
		zap.String("user", string(session.UserID)),
		zap.String("subscription_id", string(target.ID)),
	)

	return true, nil
}

func (s *Service) List(ctx context.Context, session domain.Session, filter domain.TypeFilter) (domain.Collection, error) {
	current, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	return domain.FilterByType(current, filter), nil
}

func (s *Service) Find(ctx context.Context, session domain.Session, ref string) (domain.Subscription, error) {
	current, err := s.load(ctx, session)
	if err != nil {
		return domain.Subscription{}, err
	}

	sub, err := current.Resolve(ref)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("resolve subscription: %w", err)
	}

	return sub, nil
}

func (s *Service) Totals(ctx context.Context, session domain.Session) (TotalsView, error) {
	current, err := s.load(ctx, session)
	if err != nil {
		return TotalsView{}, err
	}

	return TotalsView{
		Personal: domain.TotalsFor(current, domain.TypePersonal),
		Business: domain.TotalsFor(current, domain.TypeBusiness),
		Combined: domain.DashboardTotals(current, domain.FilterAll).Totals,
	}, nil
}

func (s *Service) Dashboard(ctx context.Context, session domain.Session, filter domain.TypeFilter) (DashboardView, error) {
	current, err := s.load(ctx, session)
	if err != nil {
		return DashboardView{}, err
	}

	return DashboardView{
		Filter:   filter,
		Summary:  domain.DashboardTotals(current, filter),
		Upcoming: domain.Dashboard(current, filter),
	}, nil
}

func (s *Service) Report(ctx context.Context, session domain.Session, r domain.ReportRange) (ReportView, error) {
	current, err := s.load(ctx, session)
	if err != nil {
		return ReportView{}, err
	}

	now := s.clock.Now()
	return ReportView{
		Range:       r,
		GeneratedAt: now,
		Buckets:     slices.Collect(domain.TimeSeries(current, r, now)),
	}, nil
}

func (s *Service) load(ctx context.Context, session domain.Session) (domain.Collection, error) {
	if !session.Valid() {
		return nil, domain.ErrNoSession
	}

	current, err := s.repo.Load(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}

	return current, nil
}

func (s *Service) save(ctx context.Context, session domain.Session, subscriptions domain.Collection) error {
	if err := s.repo.Save(ctx, session.UserID, subscriptions); err != nil {
		return fmt.Errorf("save subscriptions: %w", err)
	}

	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, &domain.ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", raw)}
	}

	return amount, nil
}
