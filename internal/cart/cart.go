// Package cart implements the client-held cart aggregate: an ordered list of
// variant lines with merge-on-duplicate semantics and durable persistence.
// The store is an explicit constructed object handed to whatever consumes it,
// not a package-level singleton. Single writer; no internal locking.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hariskhan14/bazario/internal/pricing"
)

// Line is one cart entry. The product/variant display fields are snapshots
// captured at add time so the cart, and the order eventually built from it,
// survive later product edits.
type Line struct {
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSlug  string          `json:"product_slug"`
	ProductBrand string          `json:"product_brand"`
	ProductImage string          `json:"product_image"`
	VariantID    uint            `json:"variant_id"`
	VariantSize  string          `json:"variant_size"`
	VariantSKU   string          `json:"variant_sku"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

// Key identifies a line by (product, variant) so the same size added twice
// merges instead of duplicating.
func (l Line) Key() string {
	return fmt.Sprintf("%d-%d", l.ProductID, l.VariantID)
}

type Store struct {
	lines   []Line
	rates   pricing.Rates
	storage Storage
}

func NewStore(storage Storage, rates pricing.Rates) (*Store, error) {
	s := &Store{rates: rates, storage: storage}
	if storage != nil {
		lines, err := storage.Load()
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		s.lines = lines
	}
	return s, nil
}

func (s *Store) AddItem(line Line, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	key := line.Key()
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity += quantity
			return s.persist()
		}
	}
	line.Quantity = quantity
	s.lines = append(s.lines, line)
	return s.persist()
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *Store) UpdateQuantity(key string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(key)
	}
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

func (s *Store) RemoveItem(key string) error {
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart; called once, right after a successful checkout.
func (s *Store) Clear() error {
	s.lines = nil
	return s.persist()
}

func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) Subtotal() decimal.Decimal {
	return pricing.Subtotal(Items(s.lines))
}

func (s *Store) ShippingCost(city string) decimal.Decimal {
	return s.rates.ShippingCost(city, s.Subtotal())
}

func (s *Store) Total(city string) decimal.Decimal {
	sub := s.Subtotal()
	return pricing.GrandTotal(sub, s.rates.ShippingCost(city, sub), decimal.Zero)
}

func (s *Store) persist() error {
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Save(s.lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Items adapts cart lines to the pricing calculator's input.
func Items(lines []Line) []pricing.Item {
	items := make([]pricing.Item, len(lines))
	for i, l := range lines {
		items[i] = pricing.Item{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	return items
}
