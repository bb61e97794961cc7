package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/bnema/subtrack/internal/ports/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mockAnyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID() string {
	g.next++
	return fmt.Sprintf("sub-%04d", g.next)
}

type memoryRepo struct {
	mu    sync.Mutex
	data  map[domain.UserID]domain.Collection
	saves int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{data: map[domain.UserID]domain.Collection{}}
}

func (r *memoryRepo) Load(_ context.Context, user domain.UserID) (domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[user], nil
}

func (r *memoryRepo) Save(_ context.Context, user domain.UserID, subscriptions domain.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[user] = subscriptions
	r.saves++
	return nil
}

var alice = domain.Session{UserID: "alice"}

func newTestService(repo *memoryRepo, now time.Time) (*Service, *fixedClock) {
	clock := &fixedClock{now: now}
	return NewService(repo, clock, &sequenceIDs{}, zap.NewNop()), clock
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestServiceCreateSubscriptionSavesSeededRecord(t *testing.T) {
	repo := mocks.NewMockSubscriptionRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewService(repo, clock, &sequenceIDs{}, zap.NewNop())

	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)
	repo.EXPECT().Load(mockAnyContext(), domain.UserID("alice")).Return(nil, nil)

	var saved domain.Collection
	repo.EXPECT().Save(mockAnyContext(), domain.UserID("alice"), mock.Anything).
		RunAndReturn(func(_ context.Context, _ domain.UserID, c domain.Collection) error {
			saved = c
			return nil
		})

	sub, err := service.CreateSubscription(context.Background(), alice, CreateSubscriptionCommand{
		Name:        "Netflix",
		Amount:      "9.99",
		RenewalDate: "2024-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubscriptionID("sub-0001"), sub.ID)
	assert.Equal(t, domain.TypePersonal, sub.Type)
	assert.Equal(t, domain.StatusActive, sub.Status)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), sub.RenewalDate)
	assert.Equal(t, now, sub.CreatedAt)
	require.Len(t, saved, 1)
	assert.Equal(t, sub, saved[0])
}

func TestServiceCreateSubscriptionValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		session   domain.Session
		cmd       CreateSubscriptionCommand
		wantErr   error
		wantField string
	}{
		{name: "missing name", session: alice, cmd: CreateSubscriptionCommand{Amount: "1"}, wantErr: domain.ErrValidation, wantField: "name"},
		{name: "blank name", session: alice, cmd: CreateSubscriptionCommand{Name: "   ", Amount: "1"}, wantErr: domain.ErrValidation, wantField: "name"},
		{name: "missing amount", session: alice, cmd: CreateSubscriptionCommand{Name: "Netflix"}, wantErr: domain.ErrValidation, wantField: "amount"},
		{name: "non numeric amount", session: alice, cmd: CreateSubscriptionCommand{Name: "Netflix", Amount: "abc"}, wantErr: domain.ErrValidation, wantField: "amount"},
		{name: "zero amount", session: alice, cmd: CreateSubscriptionCommand{Name: "Netflix", Amount: "0"}, wantErr: domain.ErrValidation, wantField: "amount"},
		{name: "negative amount", session: alice, cmd: CreateSubscriptionCommand{Name: "Netflix", Amount: "-4.50"}, wantErr: domain.ErrValidation, wantField: "amount"},
		{name: "unknown type", session: alice, cmd: CreateSubscriptionCommand{Name: "Netflix", Amount: "1", Type: "family"}, wantErr: domain.ErrValidation, wantField: "type"},
		{name: "bad renewal date", session: alice, cmd: CreateSubscriptionCommand{Name: "Netflix", Amount: "1", RenewalDate: "2024-13-01"}, wantErr: domain.ErrValidation, wantField: "renewal_date"},
		{name: "no session", cmd: CreateSubscriptionCommand{Name: "Netflix", Amount: "1"}, wantErr: domain.ErrNoSession},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newMemoryRepo()
			service, _ := newTestService(repo, time.Now())

			_, err := service.CreateSubscription(context.Background(), tc.session, tc.cmd)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantField != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tc.wantField, verr.Field)
			}
			assert.Zero(t, repo.saves)
		})
	}
}

func TestServiceCreateSubscriptionAcceptsMixedCaseType(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(newMemoryRepo(), time.Now())

	sub, err := service.CreateSubscription(context.Background(), alice, CreateSubscriptionCommand{
		Name:   "Office 365",
		Amount: "12.50",
		Type:   " Business",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeBusiness, sub.Type)
}

func TestServiceLifecycle(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	service, clock := newTestService(repo, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	netflix, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Netflix", Amount: "9.99", Type: "personal"})
	require.NoError(t, err)
	_, err = service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Spotify", Amount: "5.00", Type: "personal"})
	require.NoError(t, err)

	totals, err := service.Totals(ctx, alice)
	require.NoError(t, err)
	assertDecimal(t, "14.99", totals.Personal.Monthly)
	assertDecimal(t, "179.88", totals.Personal.Yearly)
	assertDecimal(t, "0", totals.Business.Monthly)

	clock.advance(24 * time.Hour)
	paused, err := service.ChangeStatus(ctx, alice, ChangeStatusCommand{Ref: string(netflix.ID), Status: "Paused"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, paused.Status)
	require.Len(t, paused.StatusHistory, 2)
	assert.Equal(t, "Status changed to paused", paused.StatusHistory[1].Note)
	assert.Equal(t, clock.now, paused.StatusHistory[1].Date)

	totals, err = service.Totals(ctx, alice)
	require.NoError(t, err)
	assertDecimal(t, "5.00", totals.Personal.Monthly)

	clock.advance(time.Hour)
	repriced, err := service.ChangePrice(ctx, alice, ChangePriceCommand{Ref: string(netflix.ID), Amount: "12.99", Note: ManualPriceNote})
	require.NoError(t, err)
	assertDecimal(t, "12.99", repriced.Amount)
	require.Len(t, repriced.PriceHistory, 2)
	assert.Equal(t, "Price updated manually", repriced.PriceHistory[1].Note)

	deleted, err := service.DeleteSubscription(ctx, alice, string(netflix.ID))
	require.NoError(t, err)
	assert.True(t, deleted)

	remaining, err := service.List(ctx, alice, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Spotify", remaining[0].Name)
	require.NoError(t, remaining.Validate())
}

func TestServiceResolvesIDPrefix(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	service, _ := newTestService(repo, time.Now())
	ctx := context.Background()

	_, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Netflix", Amount: "9.99"})
	require.NoError(t, err)
	_, err = service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Gym", Amount: "30"})
	require.NoError(t, err)

	sub, err := service.Find(ctx, alice, "sub-0002")
	require.NoError(t, err)
	assert.Equal(t, "Gym", sub.Name)

	_, err = service.Find(ctx, alice, "sub-000")
	assert.ErrorIs(t, err, domain.ErrAmbiguousID)

	_, err = service.ChangeStatus(ctx, alice, ChangeStatusCommand{Ref: "sub-000", Status: "paused"})
	assert.ErrorIs(t, err, domain.ErrAmbiguousID)
}

func TestServiceChangeStatusErrors(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	service, _ := newTestService(repo, time.Now())
	ctx := context.Background()

	sub, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Netflix", Amount: "9.99"})
	require.NoError(t, err)
	saves := repo.saves

	_, err = service.ChangeStatus(ctx, alice, ChangeStatusCommand{Ref: "missing-id", Status: "paused"})
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

	_, err = service.ChangeStatus(ctx, alice, ChangeStatusCommand{Ref: string(sub.ID), Status: "expired"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, saves, repo.saves)
}

func TestServiceChangePriceErrors(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	service, _ := newTestService(repo, time.Now())
	ctx := context.Background()

	sub, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Netflix", Amount: "9.99"})
	require.NoError(t, err)
	saves := repo.saves

	for _, amount := range []string{"", "abc", "-1", "1,99"} {
		_, err := service.ChangePrice(ctx, alice, ChangePriceCommand{Ref: string(sub.ID), Amount: amount})
		assert.ErrorIs(t, err, domain.ErrValidation, "amount %q", amount)
	}

	_, err = service.ChangePrice(ctx, alice, ChangePriceCommand{Ref: "missing-id", Amount: "3"})
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

	assert.Equal(t, saves, repo.saves)

	stored, err := service.Find(ctx, alice, string(sub.ID))
	require.NoError(t, err)
	assertDecimal(t, "9.99", stored.Amount)
	assert.Len(t, stored.PriceHistory, 1)
}

func TestServiceChangePriceAllowsZero(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(newMemoryRepo(), time.Now())
	ctx := context.Background()

	sub, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Trial", Amount: "4"})
	require.NoError(t, err)

	updated, err := service.ChangePrice(ctx, alice, ChangePriceCommand{Ref: string(sub.ID), Amount: "0"})
	require.NoError(t, err)
	assert.True(t, updated.Amount.IsZero())
	assert.Equal(t, "Price updated", updated.PriceHistory[1].Note)
}

func TestServiceDeleteUnknownIsNoop(t *testing.T) {
	repo := mocks.NewMockSubscriptionRepository(t)
	service := NewService(repo, nil, nil, nil)

	repo.EXPECT().Load(mockAnyContext(), domain.UserID("alice")).Return(domain.Collection{}, nil)

	deleted, err := service.DeleteSubscription(context.Background(), alice, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, deleted)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceSaveFailureIsWrapped(t *testing.T) {
	repo := mocks.NewMockSubscriptionRepository(t)
	service := NewService(repo, nil, &sequenceIDs{}, nil)

	saveErr := errors.New("disk full")
	repo.EXPECT().Load(mockAnyContext(), domain.UserID("alice")).Return(nil, nil)
	repo.EXPECT().Save(mockAnyContext(), domain.UserID("alice"), mock.Anything).Return(saveErr)

	_, err := service.CreateSubscription(context.Background(), alice, CreateSubscriptionCommand{Name: "Netflix", Amount: "9.99"})
	require.ErrorIs(t, err, saveErr)
	assert.ErrorContains(t, err, "save subscriptions")
}

func TestServiceLoadFailureIsWrapped(t *testing.T) {
	repo := mocks.NewMockSubscriptionRepository(t)
	service := NewService(repo, nil, nil, nil)

	repo.EXPECT().Load(mockAnyContext(), domain.UserID("alice")).Return(nil, domain.ErrCorruptRecord)

	_, err := service.List(context.Background(), alice, domain.FilterAll)
	require.ErrorIs(t, err, domain.ErrCorruptRecord)
	assert.ErrorContains(t, err, "load subscriptions")
}

func TestServiceDashboardAndReport(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	service, clock := newTestService(repo, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Later", Amount: "10", RenewalDate: "2024-04-20"})
	require.NoError(t, err)
	_, err = service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Sooner", Amount: "20", Type: "business", RenewalDate: "2024-03-28"})
	require.NoError(t, err)
	paused, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Paused", Amount: "99"})
	require.NoError(t, err)
	_, err = service.ChangeStatus(ctx, alice, ChangeStatusCommand{Ref: string(paused.ID), Status: "paused"})
	require.NoError(t, err)

	view, err := service.Dashboard(ctx, alice, domain.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Summary.Count)
	assertDecimal(t, "30", view.Summary.Monthly)
	assertDecimal(t, "360", view.Summary.Yearly)
	require.Len(t, view.Upcoming, 2)
	assert.Equal(t, "Sooner", view.Upcoming[0].Name)

	clock.now = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	report, err := service.Report(ctx, alice, domain.RangeThreeMonths)
	require.NoError(t, err)
	require.Len(t, report.Buckets, 4)
	assert.Equal(t, "Mar 2024", report.Buckets[0].Label)
	assert.True(t, report.Buckets[0].Total.IsZero())
	assertDecimal(t, "30", report.Buckets[1].Total)
	assertDecimal(t, "10", report.Buckets[3].Personal)
	assertDecimal(t, "20", report.Buckets[3].Business)
	assert.Equal(t, clock.now, report.GeneratedAt)
}

func TestServiceKeepsUsersApart(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	service, _ := newTestService(repo, time.Now())
	ctx := context.Background()
	bob := domain.Session{UserID: "bob"}

	_, err := service.CreateSubscription(ctx, alice, CreateSubscriptionCommand{Name: "Netflix", Amount: "9.99"})
	require.NoError(t, err)

	list, err := service.List(ctx, bob, domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, list)

	deleted, err := service.DeleteSubscription(ctx, bob, "sub-0001")
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err = service.List(ctx, alice, domain.FilterAll)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
