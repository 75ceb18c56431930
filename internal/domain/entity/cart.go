package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart. Product is a by-value snapshot taken when
// the line was added, so its price is what the cart charges.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered list of lines with at most one line per product.
// Insertion order is display order. The zero value is an empty cart.
type Cart struct {
	Items []CartItem
}

// Add increments the line for product or appends a new one.
// A quantity below 1 is treated as 1.
func (c *Cart) Add(product Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if idx := c.indexOf(product.ID); idx >= 0 {
		c.Items[idx].Quantity += quantity

		return
	}

	c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
}

// SetQuantity replaces the quantity of an existing line in place.
// Quantities of zero or below remove the line. Unknown products are ignored.
// An increase stops at the snapshot inventory; a line already above it is
// left where it is rather than raised further.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)

		return
	}

	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}

	line := &c.Items[idx]
	if quantity > line.Quantity && quantity > line.Product.Inventory {
		quantity = max(line.Quantity, line.Product.Inventory)
	}
	line.Quantity = quantity
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID uuid.UUID) {
	if idx := c.indexOf(productID); idx >= 0 {
		c.Items = slices.Delete(c.Items, idx, idx+1)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Replace overwrites every line with a copy of items.
func (c *Cart) Replace(items []CartItem) {
	c.Items = slices.Clone(items)
}

// Total sums the line subtotals using the prices captured in each snapshot.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// TotalItems sums the quantities of every line.
func (c Cart) TotalItems() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a copy of the lines that callers may keep.
func (c Cart) Snapshot() []CartItem {
	return slices.Clone(c.Items)
}

func (c Cart) indexOf(productID uuid.UUID) int {
	return slices.IndexFunc(c.Items, func(item CartItem) bool {
		return item.Product.ID == productID
	})
}

// RemoteCart is the copy of a user's cart kept by the remote store.
type RemoteCart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineLimit is how a cart line stands against its product's inventory
// snapshot. Clients disable the increment control when AtLimit is set.
type LineLimit struct {
	ProductID     uuid.UUID `json:"product_id"`
	MaxQuantity   int       `json:"max_quantity"`
	AtLimit       bool      `json:"at_inventory_limit"`
	OverInventory bool      `json:"over_inventory"`
}

// Limit reports the line's position against the inventory snapshot.
func (i CartItem) Limit() LineLimit {
	return LineLimit{
		ProductID:     i.Product.ID,
		MaxQuantity:   max(i.Product.Inventory, 0),
		AtLimit:       i.Quantity >= i.Product.Inventory,
		OverInventory: i.Quantity > i.Product.Inventory,
	}
}

// CartSummary is the read model returned to callers of the cart.
// Limits is index-aligned with Items.
type CartSummary struct {
	Items      []CartItem      `json:"items"`
	Limits     []LineLimit     `json:"limits"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"total_items"`
}

// Summarize builds the read model for c.
func (c Cart) Summarize() CartSummary {
	items := c.Snapshot()
	if items == nil {
		items = []CartItem{}
	}

	limits := make([]LineLimit, len(items))
	for idx, item := range items {
		limits[idx] = item.Limit()
	}

	return CartSummary{
		Items:      items,
		Limits:     limits,
		Total:      c.Total(),
		TotalItems: c.TotalItems(),
	}
}
