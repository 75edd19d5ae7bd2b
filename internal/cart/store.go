package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gpucloudstore/gpucloud-site/internal/catalog"
	"github.com/gpucloudstore/gpucloud-site/internal/leads"
)

// Item is one configuration in the cart.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Specs    string `json:"specs"`
	Price    string `json:"price"`
	Details  string `json:"details"`
	Quantity int    `json:"quantity"`
}

// Store holds the configurations a visitor selected for a quote request.
// Titles are unique: adding an existing title bumps its quantity.
type Store struct {
	mu    sync.Mutex
	items []Item
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add puts an offering into the cart and returns the resulting item.
func (s *Store) Add(o catalog.Offering) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Title == o.Title {
			s.items[i].Quantity++
			return s.items[i]
		}
	}
	item := Item{
		ID:       uuid.NewString(),
		Title:    o.Title,
		Specs:    o.Specs,
		Price:    o.Price,
		Details:  o.Details,
		Quantity: 1,
	}
	s.items = append(s.items, item)
	return item
}

// Remove drops the item with id. It reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a snapshot in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of distinct configurations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalItems sums quantities across the cart.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Offering returns the catalog entry the item was added from.
func (i Item) Offering() catalog.Offering {
	return catalog.Offering{Title: i.Title, Specs: i.Specs, Price: i.Price, Details: i.Details}
}

// Selections converts the cart into the references sent with a lead.
func (s *Store) Selections() []leads.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	out := make([]leads.Selection, 0, len(s.items))
	for _, item := range s.items {
		sel := item.Offering().Selection()
		sel.Quantity = item.Quantity
		out = append(out, sel)
	}
	return out
}
