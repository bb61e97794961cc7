// Package record is the storage representation of a user's subscriptions,
// shared by every repository backend and by the exporters.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/shopspring/decimal"
)

var errMissingTimestamp = errors.New("missing timestamp")

const (
	keyPrefix  = "subscriptions_"
	dateLayout = "2006-01-02"
)

// Key is the storage key of a user's record set.
func Key(user domain.UserID) string {
	return keyPrefix + string(user)
}

type Subscription struct {
	ID            string         `json:"id" toml:"id" yaml:"id"`
	Name          string         `json:"name" toml:"name" yaml:"name"`
	Type          string         `json:"type" toml:"type" yaml:"type"`
	Status        string         `json:"status" toml:"status" yaml:"status"`
	Amount        string         `json:"amount" toml:"amount" yaml:"amount"`
	RenewalDate   string         `json:"renewalDate,omitempty" toml:"renewal_date,omitempty" yaml:"renewal_date,omitempty"`
	PaymentMethod string         `json:"paymentMethod,omitempty" toml:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	CreatedAt     string         `json:"createdAt" toml:"created_at" yaml:"created_at"`
	PriceHistory  []PriceChange  `json:"priceHistory" toml:"price_history" yaml:"price_history"`
	StatusHistory []StatusChange `json:"statusHistory" toml:"status_history" yaml:"status_history"`
}

type PriceChange struct {
	Amount string `json:"amount" toml:"amount" yaml:"amount"`
	Date   string `json:"date" toml:"date" yaml:"date"`
	Note   string `json:"note,omitempty" toml:"note,omitempty" yaml:"note,omitempty"`
}

type StatusChange struct {
	Status string `json:"status" toml:"status" yaml:"status"`
	Date   string `json:"date" toml:"date" yaml:"date"`
	Note   string `json:"note,omitempty" toml:"note,omitempty" yaml:"note,omitempty"`
}

func FromDomain(c domain.Collection) []Subscription {
	out := make([]Subscription, 0, len(c))
	for _, sub := range c {
		out = append(out, fromSubscription(sub))
	}

	return out
}

func fromSubscription(sub domain.Subscription) Subscription {
	rec := Subscription{
		ID:            string(sub.ID),
		Name:          sub.Name,
		Type:          string(sub.Type),
		Status:        string(sub.Status),
		Amount:        sub.Amount.String(),
		PaymentMethod: sub.PaymentMethod,
		CreatedAt:     formatTime(sub.CreatedAt),
		PriceHistory:  make([]PriceChange, 0, len(sub.PriceHistory)),
		StatusHistory: make([]StatusChange, 0, len(sub.StatusHistory)),
	}
	if !sub.RenewalDate.IsZero() {
		rec.RenewalDate = sub.RenewalDate.Format(dateLayout)
	}
	for _, p := range sub.PriceHistory {
		rec.PriceHistory = append(rec.PriceHistory, PriceChange{Amount: p.Amount.String(), Date: formatTime(p.Date), Note: p.Note})
	}
	for _, s := range sub.StatusHistory {
		rec.StatusHistory = append(rec.StatusHistory, StatusChange{Status: string(s.Status), Date: formatTime(s.Date), Note: s.Note})
	}

	return rec
}

// ToDomain decodes stored records and checks every subscription invariant.
// Any failure wraps domain.ErrCorruptRecord.
func ToDomain(records []Subscription) (domain.Collection, error) {
	out := make(domain.Collection, 0, len(records))
	for i, rec := range records {
		sub, err := toSubscription(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrCorruptRecord, i, err)
		}
		out = append(out, sub)
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptRecord, err)
	}

	return out, nil
}

func toSubscription(rec Subscription) (domain.Subscription, error) {
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("parse amount: %w", err)
	}
	createdAt, err := parseTime(rec.CreatedAt)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("parse created_at: %w", err)
	}

	var renewal time.Time
	if rec.RenewalDate != "" {
		renewal, err = time.Parse(dateLayout, rec.RenewalDate)
		if err != nil {
			return domain.Subscription{}, fmt.Errorf("parse renewal_date: %w", err)
		}
	}

	sub := domain.Subscription{
		ID:            domain.SubscriptionID(rec.ID),
		Name:          rec.Name,
		Type:          domain.Type(rec.Type),
		Status:        domain.Status(rec.Status),
		Amount:        amount,
		RenewalDate:   renewal,
		PaymentMethod: rec.PaymentMethod,
		CreatedAt:     createdAt,
		PriceHistory:  make([]domain.PriceChange, 0, len(rec.PriceHistory)),
		StatusHistory: make([]domain.StatusChange, 0, len(rec.StatusHistory)),
	}

	for _, p := range rec.PriceHistory {
		value, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return domain.Subscription{}, fmt.Errorf("parse price history amount: %w", err)
		}
		date, err := parseTime(p.Date)
		if err != nil {
			return domain.Subscription{}, fmt.Errorf("parse price history date: %w", err)
		}
		sub.PriceHistory = append(sub.PriceHistory, domain.PriceChange{Amount: value, Date: date, Note: p.Note})
	}
	for _, s := range rec.StatusHistory {
		date, err := parseTime(s.Date)
		if err != nil {
			return domain.Subscription{}, fmt.Errorf("parse status history date: %w", err)
		}
		sub.StatusHistory = append(sub.StatusHistory, domain.StatusChange{Status: domain.Status(s.Status), Date: date, Note: s.Note})
	}

	return sub, nil
}

// Marshal encodes a collection as a JSON array, the payload the key-value
// and SQL backends store under Key(user).
func Marshal(c domain.Collection) ([]byte, error) {
	data, err := json.Marshal(FromDomain(c))
	if err != nil {
		return nil, fmt.Errorf("encode subscriptions: %w", err)
	}

	return data, nil
}

// Unmarshal decodes a payload written by Marshal. Empty input is an empty collection.
func Unmarshal(data []byte) (domain.Collection, error) {
	if len(data) == 0 {
		return domain.Collection{}, nil
	}

	var records []Subscription
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode subscriptions: %w", domain.ErrCorruptRecord, err)
	}

	return ToDomain(records)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errMissingTimestamp
	}

	return time.Parse(time.RFC3339Nano, raw)
}
