package cart

import "sync"

// Saver mirrors a session's cart after every mutation, so a reload does not
// lose in-progress selections. Persistence lives behind this function; the
// store itself knows nothing about how snapshots are written.
type Saver func(sessionKey string, lines []Line) error

// Store keeps one cart per dine-in session. It is created explicitly and
// injected where needed; there is no package-level instance.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
	save  Saver
}

func NewStore(save Saver) *Store {
	return &Store{
		carts: make(map[string]*Cart),
		save:  save,
	}
}

func (s *Store) cart(sessionKey string) *Cart {
	c, ok := s.carts[sessionKey]
	if !ok {
		c = New()
		s.carts[sessionKey] = c
	}
	return c
}

func (s *Store) persist(sessionKey string, c *Cart) error {
	if s.save == nil {
		return nil
	}
	return s.save(sessionKey, c.Lines())
}

// Restore hydrates a session's cart from a persisted snapshot. Any in-memory
// state for the session is replaced.
func (s *Store) Restore(sessionKey string, lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := New()
	for _, line := range lines {
		c.lines[line.MenuID] = &Line{
			MenuID:   line.MenuID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		}
		c.order = append(c.order, line.MenuID)
	}
	s.carts[sessionKey] = c
}

// AddItem adds one unit of the item and persists the snapshot.
func (s *Store) AddItem(sessionKey string, item Item) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionKey)
	c.AddItem(item)
	return c.Lines(), s.persist(sessionKey, c)
}

// RemoveItem deletes the line outright and persists the snapshot.
func (s *Store) RemoveItem(sessionKey string, menuID uint) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionKey)
	c.RemoveItem(menuID)
	return c.Lines(), s.persist(sessionKey, c)
}

// UpdateQuantity adjusts a line by delta and persists the snapshot.
func (s *Store) UpdateQuantity(sessionKey string, menuID uint, delta int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionKey)
	c.UpdateQuantity(menuID, delta)
	return c.Lines(), s.persist(sessionKey, c)
}

// SetNotes attaches a note to a line and persists the snapshot.
func (s *Store) SetNotes(sessionKey string, menuID uint, notes string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionKey)
	c.SetNotes(menuID, notes)
	return c.Lines(), s.persist(sessionKey, c)
}

// Lines returns the session's entries in insertion order.
func (s *Store) Lines(sessionKey string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionKey).Lines()
}

// Total is the display-only sum for the session's cart.
func (s *Store) Total(sessionKey string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionKey).Total()
}

// CheckoutItems builds the order-creation payload for the session.
func (s *Store) CheckoutItems(sessionKey string) []CheckoutItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionKey).CheckoutItems()
}

// IsEmpty reports whether the session has an empty cart.
func (s *Store) IsEmpty(sessionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionKey).IsEmpty()
}

// Clear empties the session's cart. Called after a successful checkout; a
// failed checkout leaves the cart untouched.
func (s *Store) Clear(sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionKey)
	c.Clear()
	return s.persist(sessionKey, c)
}
