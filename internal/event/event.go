// Package event defines the notifications produced by the cart and wishlist
// stores and the notifiers that deliver them.
package event

import (
	"context"
	"time"

	"github.com/utafrali/storefront/internal/domain"
)

// Kind identifies an event.
type Kind string

const (
	KindItemAdded       Kind = "cart.item_added"
	KindItemRemoved     Kind = "cart.item_removed"
	KindCartCleared     Kind = "cart.cleared"
	KindWishlistChanged Kind = "wishlist.changed"
)

// Action describes a wishlist change.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
	ActionCleared Action = "cleared"
)

// Event is a single store notification.
type Event struct {
	Kind       Kind      `json:"kind"`
	ProductID  string    `json:"product_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	Action     Action    `json:"action,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemAdded reports quantity units of p added to the cart.
func ItemAdded(p domain.Product, quantity int) Event {
	return Event{
		Kind:       KindItemAdded,
		ProductID:  p.ID,
		Name:       p.Name,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}
}

// ItemRemoved reports the removal of a cart line.
func ItemRemoved(p domain.Product) Event {
	return Event{
		Kind:       KindItemRemoved,
		ProductID:  p.ID,
		Name:       p.Name,
		OccurredAt: time.Now().UTC(),
	}
}

// CartCleared reports an emptied cart.
func CartCleared() Event {
	return Event{Kind: KindCartCleared, OccurredAt: time.Now().UTC()}
}

// WishlistChanged reports a wishlist mutation. p is ignored for ActionCleared.
func WishlistChanged(action Action, p domain.Product) Event {
	e := Event{
		Kind:       KindWishlistChanged,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if action != ActionCleared {
		e.ProductID = p.ID
		e.Name = p.Name
	}
	return e
}

// Notifier receives store events. Implementations must not block the caller
// for long and must not fail the mutation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, e Event)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, e Event) { f(ctx, e) }

// Nop discards events.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, Event) {}

// Multi delivers each event to every notifier in order.
type Multi []Notifier

// Notify fans e out.
func (m Multi) Notify(ctx context.Context, e Event) {
	for _, n := range m {
		n.Notify(ctx, e)
	}
}
