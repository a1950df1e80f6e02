package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderLine is one cart entry frozen at checkout time.
type OrderLine struct {
	ItemIndex int     `json:"item_index"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is a snapshot of the cart taken when the user hits "buy". Nothing is
// actually bought; the order exists so the moment can be recorded.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	Lines     []OrderLine `json:"lines"`
	Total     float64     `json:"total"`
	Remaining float64     `json:"remaining"` // may be negative
	CreatedAt time.Time   `json:"created_at"`
}
