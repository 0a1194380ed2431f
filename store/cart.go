package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/domain"
)

// CartStore is local-only order composition state. Nothing here touches the
// remote store except the lazy product lookups that price the subtotal.
type CartStore struct {
	backend ProductsBackend
	log     zerolog.Logger

	mu       sync.Mutex
	items    []domain.CartItem
	products map[string]domain.Product // resolved product metadata by id
}

func NewCartStore(backend ProductsBackend, log zerolog.Logger) *CartStore {
	return &CartStore{
		backend:  backend,
		log:      log,
		products: make(map[string]domain.Product),
	}
}

// AddItem puts quantity units of the product in the cart. If the product is
// already present its quantity is incremented instead of duplicating the
// entry, and notes are stamped only when supplied.
func (s *CartStore) AddItem(ctx context.Context, productID string, quantity int, notes string) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += quantity
			if notes != "" {
				s.items[i].Notes = notes
			}
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.CartItem{ProductID: productID, Quantity: quantity, Notes: notes})
	}
	s.mu.Unlock()

	s.resolveProducts(ctx)
}

// RemoveItem drops the product from the cart entirely.
func (s *CartStore) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing entry. A non-positive
// quantity is treated as removal.
func (s *CartStore) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Resolved product metadata is kept; it is still
// valid if the user rebuilds the cart.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a snapshot of the cart entries.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of all entry quantities.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Subtotal sums quantity times unit price over entries whose product
// metadata has been resolved; unresolved products contribute zero until
// their record arrives.
func (s *CartStore) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var subtotal float64
	for _, it := range s.items {
		if p, ok := s.products[it.ProductID]; ok {
			subtotal += p.Price * float64(it.Quantity)
		}
	}
	return subtotal
}

// Product returns the resolved metadata for a cart product, if known.
func (s *CartStore) Product(productID string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	return p, ok
}

// resolveProducts fetches metadata for every cart product not yet cached.
func (s *CartStore) resolveProducts(ctx context.Context) {
	s.mu.Lock()
	var missing []string
	for _, it := range s.items {
		if _, ok := s.products[it.ProductID]; !ok {
			missing = append(missing, it.ProductID)
		}
	}
	s.mu.Unlock()
	if len(missing) == 0 {
		return
	}

	products, err := s.backend.FetchProducts(ctx, missing)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to resolve cart products")
		return
	}

	s.mu.Lock()
	for _, p := range products {
		s.products[p.ID] = p
	}
	s.mu.Unlock()
}
