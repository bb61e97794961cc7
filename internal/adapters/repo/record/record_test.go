package record

import (
	"testing"
	"time"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection(t *testing.T) domain.Collection {
	t.Helper()

	created := time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)
	netflix, err := domain.NewSubscription("sub-netflix", domain.NewSubscriptionInput{
		Name:          "Netflix",
		Amount:        decimal.RequireFromString("9.99"),
		Type:          domain.TypePersonal,
		RenewalDate:   time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "Visa",
	}, created)
	require.NoError(t, err)

	office, err := domain.NewSubscription("sub-office", domain.NewSubscriptionInput{
		Name:   "Office",
		Amount: decimal.RequireFromString("12.5"),
		Type:   domain.TypeBusiness,
	}, created)
	require.NoError(t, err)

	c := domain.Collection{}.Add(netflix).Add(office)
	c, err = c.ChangeStatus("sub-netflix", domain.StatusPaused, "", created.Add(time.Hour))
	require.NoError(t, err)
	c, err = c.ChangePrice("sub-netflix", decimal.RequireFromString("10.99"), "Price updated manually", created.Add(2*time.Hour))
	require.NoError(t, err)

	return c
}

func TestKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "subscriptions_alice", Key("alice"))
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	c := sampleCollection(t)

	data, err := Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"renewalDate":"2024-02-15"`)
	assert.Contains(t, string(data), `"note":"Status changed to paused"`)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestUnmarshalEmptyPayload(t *testing.T) {
	t.Parallel()

	got, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Unmarshal([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalRejectsCorruptRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "{"},
		{name: "bad amount", payload: `[{"id":"a","name":"A","type":"personal","status":"active","amount":"x","createdAt":"2024-01-01T00:00:00Z"}]`},
		{name: "missing created", payload: `[{"id":"a","name":"A","type":"personal","status":"active","amount":"1"}]`},
		{name: "empty histories", payload: `[{"id":"a","name":"A","type":"personal","status":"active","amount":"1","createdAt":"2024-01-01T00:00:00Z"}]`},
		{
			name: "amount mirror broken",
			payload: `[{"id":"a","name":"A","type":"personal","status":"active","amount":"2","createdAt":"2024-01-01T00:00:00Z",` +
				`"priceHistory":[{"amount":"1","date":"2024-01-01T00:00:00Z"}],` +
				`"statusHistory":[{"status":"active","date":"2024-01-01T00:00:00Z"}]}]`,
		},
		{
			name: "unknown status",
			payload: `[{"id":"a","name":"A","type":"personal","status":"expired","amount":"1","createdAt":"2024-01-01T00:00:00Z",` +
				`"priceHistory":[{"amount":"1","date":"2024-01-01T00:00:00Z"}],` +
				`"statusHistory":[{"status":"expired","date":"2024-01-01T00:00:00Z"}]}]`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unmarshal([]byte(tc.payload))
			assert.ErrorIs(t, err, domain.ErrCorruptRecord)
		})
	}
}

func TestToDomainKeepsOrder(t *testing.T) {
	t.Parallel()

	c := sampleCollection(t)
	got, err := ToDomain(FromDomain(c))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.SubscriptionID("sub-netflix"), got[0].ID)
	assert.Equal(t, domain.SubscriptionID("sub-office"), got[1].ID)
}
