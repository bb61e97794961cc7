package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	initialPriceNote   = "Initial price"
	createdStatusNote  = "Subscription created"
	defaultPriceNote   = "Price updated"
	statusChangeFormat = "Status changed to %s"
)

type SubscriptionID string

type UserID string

type Type string

const (
	TypePersonal Type = "personal"
	TypeBusiness Type = "business"
)

func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypePersonal, TypeBusiness:
		return t, nil
	default:
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported type %q", raw)}
	}
}

type Subscription struct {
	ID            SubscriptionID
	Name          string
	Type          Type
	Status        Status
	Amount        decimal.Decimal
	RenewalDate   time.Time
	PaymentMethod string
	CreatedAt     time.Time
	PriceHistory  []PriceChange
	StatusHistory []StatusChange
}

type PriceChange struct {
	Amount decimal.Decimal
	Date   time.Time
	Note   string
}

type StatusChange struct {
	Status Status
	Date   time.Time
	Note   string
}

// NewSubscriptionInput carries the caller-supplied fields of a new subscription.
type NewSubscriptionInput struct {
	Name          string
	Amount        decimal.Decimal
	Type          Type
	RenewalDate   time.Time
	PaymentMethod string
}

func (in NewSubscriptionInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if !in.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
	}
	if _, err := ParseType(string(in.Type)); err != nil {
		return err
	}

	return nil
}

// NewSubscription builds an active subscription with both histories seeded at now.
func NewSubscription(id SubscriptionID, in NewSubscriptionInput, now time.Time) (Subscription, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Subscription{}, &ValidationError{Field: "id", Reason: "id is required"}
	}
	if err := in.Validate(); err != nil {
		return Subscription{}, err
	}
	typ, err := ParseType(string(in.Type))
	if err != nil {
		return Subscription{}, err
	}

	return Subscription{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Type:          typ,
		Status:        StatusActive,
		Amount:        in.Amount,
		RenewalDate:   in.RenewalDate,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		CreatedAt:     now,
		PriceHistory: []PriceChange{
			{Amount: in.Amount, Date: now, Note: initialPriceNote},
		},
		StatusHistory: []StatusChange{
			{Status: StatusActive, Date: now, Note: createdStatusNote},
		},
	}, nil
}

func (s Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// Validate checks the mirror and history invariants of a stored subscription.
func (s Subscription) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("subscription %s: name is required", s.ID)
	}
	if typ, err := ParseType(string(s.Type)); err != nil {
		return fmt.Errorf("subscription %s: %w", s.ID, err)
	} else if typ != s.Type {
		return fmt.Errorf("subscription %s: type %q is not in canonical form", s.ID, s.Type)
	}
	if status, err := ParseStatus(string(s.Status)); err != nil {
		return fmt.Errorf("subscription %s: %w", s.ID, err)
	} else if status != s.Status {
		return fmt.Errorf("subscription %s: status %q is not in canonical form", s.ID, s.Status)
	}
	if s.Amount.IsNegative() {
		return fmt.Errorf("subscription %s: amount is negative", s.ID)
	}
	if len(s.PriceHistory) == 0 {
		return fmt.Errorf("subscription %s: price history is empty", s.ID)
	}
	if len(s.StatusHistory) == 0 {
		return fmt.Errorf("subscription %s: status history is empty", s.ID)
	}
	if !s.PriceHistory[len(s.PriceHistory)-1].Amount.Equal(s.Amount) {
		return fmt.Errorf("subscription %s: amount does not match last price history entry", s.ID)
	}
	if s.StatusHistory[len(s.StatusHistory)-1].Status != s.Status {
		return fmt.Errorf("subscription %s: status does not match last status history entry", s.ID)
	}
	for i := 1; i < len(s.PriceHistory); i++ {
		if s.PriceHistory[i].Date.Before(s.PriceHistory[i-1].Date) {
			return fmt.Errorf("subscription %s: price history is not chronological", s.ID)
		}
	}
	for i := 1; i < len(s.StatusHistory); i++ {
		if s.StatusHistory[i].Date.Before(s.StatusHistory[i-1].Date) {
			return fmt.Errorf("subscription %s: status history is not chronological", s.ID)
		}
	}

	return nil
}

func (s Subscription) withStatus(status Status, note string, at time.Time) Subscription {
	if note == "" {
		note = fmt.Sprintf(statusChangeFormat, status)
	}
	if last := s.StatusHistory[len(s.StatusHistory)-1].Date; at.Before(last) {
		at = last
	}

	s.Status = s.Status.TransitionTo(status)
	s.StatusHistory = append(slices.Clone(s.StatusHistory), StatusChange{Status: status, Date: at, Note: note})
	return s
}

func (s Subscription) withPrice(amount decimal.Decimal, note string, at time.Time) Subscription {
	if note == "" {
		note = defaultPriceNote
	}
	if last := s.PriceHistory[len(s.PriceHistory)-1].Date; at.Before(last) {
		at = last
	}

	s.Amount = amount
	s.PriceHistory = append(slices.Clone(s.PriceHistory), PriceChange{Amount: amount, Date: at, Note: note})
	return s
}
