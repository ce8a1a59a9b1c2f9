// Package city holds the registry of items visible on the simulation grid.
// Vehicles are registered for the whole run; passengers only while they wait
// to be collected.
package city

import (
	"fmt"
	"sync"

	"github.com/kilianp07/taxisim/core/model"
)

// Item is anything placed on the grid.
type Item interface {
	Location() model.Position
}

// Drawable items expose the symbol used by text renderers.
type Drawable interface {
	Item
	Glyph() rune
}

// Registry is the view of the grid consumed by the simulation core.
type Registry interface {
	Width() int
	Height() int
	AddItem(Item) error
	RemoveItem(Item) bool
	Items() []Item
}

// City is the in-memory Registry. Items are kept in insertion order.
type City struct {
	width  int
	height int

	mu    sync.RWMutex
	items []Item
}

// New creates a city of the given size.
func New(width, height int) (*City, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: city size %dx%d", model.ErrInvalidArgument, width, height)
	}
	return &City{width: width, height: height}, nil
}

func (c *City) Width() int  { return c.width }
func (c *City) Height() int { return c.height }

// Contains reports whether p lies inside the grid.
func (c *City) Contains(p model.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.width && p.Y < c.height
}

// AddItem registers item. Adding the same item twice is an error.
func (c *City) AddItem(item Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", model.ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it == item {
			return fmt.Errorf("%w: item already registered", model.ErrInvalidArgument)
		}
	}
	c.items = append(c.items, item)
	return nil
}

// RemoveItem unregisters item and reports whether it was present.
func (c *City) RemoveItem(item Item) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if it == item {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a snapshot of the registered items.
func (c *City) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of registered items.
func (c *City) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
