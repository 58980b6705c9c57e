// Package cart implements the client-side shopping cart: an ordered list of
// item snapshots persisted through a Storage, independent of server
// inventory.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"void-shop/internal/model"

	"github.com/rs/zerolog"
)

// Cart operation errors.
var (
	// ErrUnavailable means the availability check reported the product as
	// sold out or unknown.
	ErrUnavailable = errors.New("product is not available")

	// ErrAlreadyInCart means the product id is already present. Quantity
	// changes go through UpdateQty, re-adding is rejected.
	ErrAlreadyInCart = errors.New("product already in cart")
)

// Item is a cart entry: a denormalized snapshot of the product at the time
// it was added. Price and title can drift from server state until the next
// purchase attempt.
type Item struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// AvailabilityChecker gates adds with an advisory availability check.
// Satisfied by *client.Client.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, productID string) model.Availability
}

// Cart is the client-local cart state machine. It is not safe for
// concurrent use; the client event loop is single-threaded.
type Cart struct {
	storage Storage
	checker AvailabilityChecker
	logger  zerolog.Logger
	items   []Item
}

// New creates a cart backed by storage, loading any persisted state.
// Corrupt or missing payloads are treated as an empty cart.
func New(storage Storage, checker AvailabilityChecker, logger zerolog.Logger) *Cart {
	c := &Cart{
		storage: storage,
		checker: checker,
		logger:  logger.With().Str("component", "cart").Logger(),
	}
	c.load()
	return c
}

// load restores cart state from storage.
func (c *Cart) load() {
	data, err := c.storage.Load()
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to load cart, starting empty")
		c.items = nil
		return
	}
	if len(data) == 0 {
		c.items = nil
		return
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn().Err(err).Msg("corrupt cart payload, starting empty")
		c.items = nil
		return
	}
	c.items = items
}

// persist writes the current state to storage.
func (c *Cart) persist() {
	data, err := json.Marshal(c.itemsOrEmpty())
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to encode cart")
		return
	}
	if err := c.storage.Save(data); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist cart")
	}
}

// itemsOrEmpty never returns nil so the persisted payload is always a JSON
// array.
func (c *Cart) itemsOrEmpty() []Item {
	if c.items == nil {
		return []Item{}
	}
	return c.items
}

// Add checks availability and appends the item. Sold-out products and
// duplicate ids are rejected.
func (c *Cart) Add(ctx context.Context, item Item) error {
	if item.ID == "" {
		return fmt.Errorf("item id is required")
	}

	for _, existing := range c.items {
		if existing.ID == item.ID {
			c.logger.Debug().Str("id", item.ID).Msg("rejected duplicate add")
			return ErrAlreadyInCart
		}
	}

	availability := c.checker.CheckAvailability(ctx, item.ID)
	if !availability.Available {
		c.logger.Debug().Str("id", item.ID).Msg("rejected add for unavailable product")
		return ErrUnavailable
	}

	if item.Qty < 1 {
		item.Qty = 1
	}

	c.items = append(c.items, item)
	c.persist()

	c.logger.Debug().Str("id", item.ID).Int("qty", item.Qty).Msg("item added")

	return nil
}

// Remove deletes the item with the given id, reporting whether it was
// present.
func (c *Cart) Remove(id string) bool {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return true
		}
	}
	return false
}

// UpdateQty adjusts an item's quantity by delta, never below one.
func (c *Cart) UpdateQty(id string, delta int) {
	for i := range c.items {
		if c.items[i].ID == id {
			qty := c.items[i].Qty + delta
			if qty < 1 {
				qty = 1
			}
			c.items[i].Qty = qty
			c.persist()
			return
		}
	}
}

// Clear removes every item.
func (c *Cart) Clear() {
	c.items = nil
	c.persist()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Count returns the total quantity across all items.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Qty
	}
	return count
}

// Total returns the cart total (price times quantity, summed).
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Qty)
	}
	return total
}
