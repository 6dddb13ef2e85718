// Package cart holds the in-progress selections of a dine-in session before
// checkout turns them into an order. Prices carried here are display-only;
// checkout sends menu ids and quantities and the order is repriced from the
// menus table.
package cart

// Item is a menu entry as presented to the customer.
type Item struct {
	MenuID uint
	Name   string
	Price  float64
}

// Line is one cart entry. Quantity is always >= 1; a line that would drop to
// zero is removed instead.
type Line struct {
	MenuID   uint    `json:"menu_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`
}

// CheckoutItem is one line of the order-creation request. No price field;
// the server reprices at checkout.
type CheckoutItem struct {
	MenuID   uint   `json:"menu_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// Cart accumulates lines for a single session. It is not safe for concurrent
// use on its own; Store serializes access.
type Cart struct {
	lines map[uint]*Line
	order []uint // menu ids in insertion order, for stable display
}

func New() *Cart {
	return &Cart{lines: make(map[uint]*Line)}
}

// AddItem inserts the item with quantity 1, or bumps the quantity if the
// item is already in the cart.
func (c *Cart) AddItem(item Item) {
	if line, ok := c.lines[item.MenuID]; ok {
		line.Quantity++
		return
	}
	c.lines[item.MenuID] = &Line{
		MenuID:   item.MenuID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	}
	c.order = append(c.order, item.MenuID)
}

// RemoveItem deletes the entry outright regardless of quantity.
func (c *Cart) RemoveItem(menuID uint) {
	if _, ok := c.lines[menuID]; !ok {
		return
	}
	delete(c.lines, menuID)
	for i, id := range c.order {
		if id == menuID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity adjusts a line by delta. A resulting quantity of zero or
// below removes the line.
func (c *Cart) UpdateQuantity(menuID uint, delta int) {
	line, ok := c.lines[menuID]
	if !ok {
		return
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		c.RemoveItem(menuID)
	}
}

// SetNotes attaches a note to an existing line.
func (c *Cart) SetNotes(menuID uint, notes string) {
	if line, ok := c.lines[menuID]; ok {
		line.Notes = notes
	}
}

// Total sums price times quantity over all lines. Display-only.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// TotalItems counts units across all lines.
func (c *Cart) TotalItems() int {
	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Lines returns the entries in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// CheckoutItems builds the order-creation payload from the current lines.
func (c *Cart) CheckoutItems() []CheckoutItem {
	out := make([]CheckoutItem, 0, len(c.lines))
	for _, id := range c.order {
		line := c.lines[id]
		out = append(out, CheckoutItem{
			MenuID:   line.MenuID,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		})
	}
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.lines = make(map[uint]*Line)
	c.order = nil
}
