package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Collection is the ordered record set of one user. Mutating methods never
// modify the receiver; they return a new collection or an error.
type Collection []Subscription

const minIDPrefixLen = 4

func (c Collection) Add(sub Subscription) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, sub)
}

func (c Collection) Get(id SubscriptionID) (Subscription, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Subscription{}, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, id)
	}

	return c[i], nil
}

// Resolve finds a subscription by exact id or by a unique id prefix.
func (c Collection) Resolve(ref string) (Subscription, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Subscription{}, &ValidationError{Field: "id", Reason: "id is required"}
	}
	if i := c.indexOf(SubscriptionID(ref)); i >= 0 {
		return c[i], nil
	}
	if len(ref) < minIDPrefixLen {
		return Subscription{}, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, ref)
	}

	var matches []Subscription
	for _, sub := range c {
		if strings.HasPrefix(string(sub.ID), ref) {
			matches = append(matches, sub)
		}
	}

	switch len(matches) {
	case 0:
		return Subscription{}, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return Subscription{}, fmt.Errorf("%w: %q matches %d subscriptions", ErrAmbiguousID, ref, len(matches))
	}
}

func (c Collection) ChangeStatus(id SubscriptionID, status Status, note string, at time.Time) (Collection, error) {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return nil, err
	}

	return c.replace(id, func(sub Subscription) Subscription {
		return sub.withStatus(parsed, strings.TrimSpace(note), at)
	})
}

func (c Collection) ChangePrice(id SubscriptionID, amount decimal.Decimal, note string, at time.Time) (Collection, error) {
	if amount.IsNegative() {
		return nil, &ValidationError{Field: "amount", Reason: "amount must not be negative"}
	}

	return c.replace(id, func(sub Subscription) Subscription {
		return sub.withPrice(amount, strings.TrimSpace(note), at)
	})
}

// Delete drops the subscription with id. Unknown ids are ignored.
func (c Collection) Delete(id SubscriptionID) Collection {
	return slices.DeleteFunc(slices.Clone(c), func(sub Subscription) bool {
		return sub.ID == id
	})
}

func (c Collection) Validate() error {
	seen := make(map[SubscriptionID]struct{}, len(c))
	for _, sub := range c {
		if err := sub.Validate(); err != nil {
			return err
		}
		if _, ok := seen[sub.ID]; ok {
			return fmt.Errorf("duplicate subscription id %s", sub.ID)
		}
		seen[sub.ID] = struct{}{}
	}

	return nil
}

func (c Collection) replace(id SubscriptionID, fn func(Subscription) Subscription) (Collection, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, id)
	}

	out := slices.Clone(c)
	out[i] = fn(out[i])
	return out, nil
}

func (c Collection) indexOf(id SubscriptionID) int {
	return slices.IndexFunc(c, func(sub Subscription) bool {
		return sub.ID == id
	})
}
