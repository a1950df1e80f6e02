// Package catalog holds the ordered list of comparison goods the simulated
// fortune can be spent on. Entries are immutable after load and referenced
// by position from the cart.
package catalog

import (
	"fmt"

	"SatoshiSim/internal/model"
)

// Catalog is an immutable ordered sequence of comparison items.
type Catalog struct {
	items []model.ComparisonItem
}

// DefaultItems mirrors the goods the page ships with.
func DefaultItems() []model.ComparisonItem {
	return []model.ComparisonItem{
		{Name: "iPhone 15 Pro Max", Price: 1199, Unit: "台", Dynasty: "乾隆中期", YearsAgo: 275},
		{Name: "MacBook Pro", Price: 2499, Unit: "台", Dynasty: "顺治十二年", YearsAgo: 370},
		{Name: "特斯拉Model S", Price: 89990, Unit: "辆", Dynasty: "明朝崇祯", YearsAgo: 395},
		{Name: "北京四合院", Price: 50000000, Unit: "套", Dynasty: "唐朝贞观", YearsAgo: 1400},
		{Name: "黄金（1盎司）", Price: 2000, Unit: "盎司", Dynasty: "康熙年间", YearsAgo: 340},
	}
}

// New builds a catalog from the given items, or the defaults when empty.
func New(items []model.ComparisonItem) *Catalog {
	if len(items) == 0 {
		items = DefaultItems()
	}
	copied := make([]model.ComparisonItem, len(items))
	copy(copied, items)
	return &Catalog{items: copied}
}

// ItemAt returns the item at the given position. An out-of-range index is a
// caller bug, reported as an error.
func (c *Catalog) ItemAt(i int) (model.ComparisonItem, error) {
	if i < 0 || i >= len(c.items) {
		return model.ComparisonItem{}, fmt.Errorf("catalog: index %d out of range [0,%d)", i, len(c.items))
	}
	return c.items[i], nil
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of all items in order.
func (c *Catalog) Items() []model.ComparisonItem {
	out := make([]model.ComparisonItem, len(c.items))
	copy(out, c.items)
	return out
}
