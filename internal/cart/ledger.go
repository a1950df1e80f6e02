// Package cart implements the persisted shopping cart ledger: a mapping from
// catalog position to purchased quantity, with derived totals. The ledger is
// the only durable state in the system.
package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"SatoshiSim/internal/catalog"
	"SatoshiSim/internal/model"
	"SatoshiSim/internal/storage"
)

// StorageKey is the slot the serialized quantity mapping lives under. The key
// is kept stable so carts survive upgrades.
const StorageKey = "satoshi-cart-storage"

// ErrEmptyCart is returned by Checkout when there is nothing to buy.
var ErrEmptyCart = errors.New("cart: nothing to check out")

// Ledger owns the quantity mapping. All mutation goes through Add, Remove and
// Clear; every successful mutation is persisted, and persistence failures
// degrade to in-memory state for the session.
type Ledger struct {
	mu         sync.Mutex
	quantities map[int]int
	store      storage.Store
	catalog    *catalog.Catalog
}

// NewLedger loads any persisted cart from the store. A missing or corrupt
// payload yields an empty cart, never an error.
func NewLedger(store storage.Store, cat *catalog.Catalog) *Ledger {
	l := &Ledger{
		quantities: make(map[int]int),
		store:      store,
		catalog:    cat,
	}
	l.load()
	return l
}

func (l *Ledger) load() {
	data, err := l.store.Read(StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[WARN] read cart state: %v, starting empty", err)
		}
		return
	}
	var stored map[int]int
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("[WARN] corrupt cart state: %v, starting empty", err)
		return
	}
	for id, qty := range stored {
		if qty <= 0 {
			continue
		}
		if id < 0 || id >= l.catalog.Len() {
			log.Printf("[WARN] dropping cart entry for unknown item %d", id)
			continue
		}
		l.quantities[id] = qty
	}
}

// save persists the mapping. Called with l.mu held.
func (l *Ledger) save() {
	data, err := json.Marshal(l.quantities)
	if err != nil {
		log.Printf("[ERROR] encode cart state: %v", err)
		return
	}
	if err := l.store.Write(StorageKey, data); err != nil {
		log.Printf("[ERROR] save cart state: %v (cart is in-memory only this session)", err)
	}
}

// Add increments the quantity for an item. There is no upper bound: spending
// past the total fortune is allowed, the shortfall just shows up as negative
// remaining assets.
func (l *Ledger) Add(id, qty int) {
	if qty <= 0 || id < 0 || id >= l.catalog.Len() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quantities[id] += qty
	l.save()
}

// Remove decrements the quantity for an item, deleting the entry when it
// would drop to zero or below. Removing an absent item is a no-op.
func (l *Ledger) Remove(id, qty int) {
	if qty <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.quantities[id]
	if !ok {
		return
	}
	if current > qty {
		l.quantities[id] = current - qty
	} else {
		delete(l.quantities, id)
	}
	l.save()
}

// Clear empties the cart.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quantities = make(map[int]int)
	l.save()
}

// QuantityOf returns the stored quantity for an item, zero when absent.
func (l *Ledger) QuantityOf(id int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quantities[id]
}

// SubtotalOf returns quantity times unit price for one item.
func (l *Ledger) SubtotalOf(id int) float64 {
	item, err := l.catalog.ItemAt(id)
	if err != nil {
		return 0
	}
	return float64(l.QuantityOf(id)) * item.Price
}

// Total sums unit price times quantity over every entry.
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalLocked()
}

func (l *Ledger) totalLocked() float64 {
	total := 0.0
	for id, qty := range l.quantities {
		item, err := l.catalog.ItemAt(id)
		if err != nil {
			continue
		}
		total += item.Price * float64(qty)
	}
	return total
}

// Remaining is the total fortune minus the cart total. A negative result is a
// valid, displayed state, not an error.
func (l *Ledger) Remaining(totalValue float64) float64 {
	return totalValue - l.Total()
}

// Items returns a snapshot of the quantity mapping.
func (l *Ledger) Items() map[int]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[int]int, len(l.quantities))
	for id, qty := range l.quantities {
		out[id] = qty
	}
	return out
}

// Len returns the number of distinct items in the cart.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.quantities)
}

// Checkout freezes the current cart into an order against the given total
// fortune. The cart itself is left untouched; the purchase is theatrical.
func (l *Ledger) Checkout(totalValue float64) (model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.quantities) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	lines := make([]model.OrderLine, 0, len(l.quantities))
	for id, qty := range l.quantities {
		item, err := l.catalog.ItemAt(id)
		if err != nil {
			continue
		}
		lines = append(lines, model.OrderLine{
			ItemIndex: id,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  qty,
			Subtotal:  item.Price * float64(qty),
		})
	}

	total := l.totalLocked()
	return model.Order{
		ID:        uuid.New(),
		Lines:     lines,
		Total:     total,
		Remaining: totalValue - total,
		CreatedAt: time.Now(),
	}, nil
}
