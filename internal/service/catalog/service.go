package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"CartPilot/entity"
	"CartPilot/internal/lib/sl"
)

//go:embed data/*.json
var dataFS embed.FS

// Service holds the static commerce data: products, stores, customers and
// past transactions. All of it is read-only after construction.
type Service struct {
	products     []entity.Product
	productByID  map[string]entity.Product
	stores       []entity.Store
	storeByID    map[string]entity.Store
	customers    []entity.Customer
	customerByID map[string]entity.Customer
	transactions []entity.Transaction
	log          *slog.Logger
}

// NewCatalogService loads the embedded catalog files and builds lookup
// indexes.
func NewCatalogService(log *slog.Logger) (*Service, error) {
	s := &Service{
		productByID:  make(map[string]entity.Product),
		storeByID:    make(map[string]entity.Store),
		customerByID: make(map[string]entity.Customer),
		log:          log.With(sl.Module("service.catalog")),
	}

	if err := load(&s.products, "data/products.json"); err != nil {
		return nil, err
	}
	if err := load(&s.stores, "data/stores.json"); err != nil {
		return nil, err
	}
	if err := load(&s.customers, "data/customers.json"); err != nil {
		return nil, err
	}
	if err := load(&s.transactions, "data/transactions.json"); err != nil {
		return nil, err
	}

	for _, p := range s.products {
		s.productByID[p.ID] = p
	}
	for _, st := range s.stores {
		s.storeByID[st.ID] = st
	}
	for _, c := range s.customers {
		s.customerByID[c.ID] = c
	}

	s.log.Info("catalog loaded",
		slog.Int("products", len(s.products)),
		slog.Int("stores", len(s.stores)),
		slog.Int("customers", len(s.customers)),
		slog.Int("transactions", len(s.transactions)),
	)

	return s, nil
}

func load(dst any, name string) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// Products returns all catalog products in file order.
func (s *Service) Products() []entity.Product {
	return s.products
}

// Product looks up a product by its id.
func (s *Service) Product(id string) (entity.Product, bool) {
	p, ok := s.productByID[id]
	return p, ok
}

// Stores returns all pickup stores.
func (s *Service) Stores() []entity.Store {
	return s.stores
}

// Store looks up a store by its id.
func (s *Service) Store(id string) (entity.Store, bool) {
	st, ok := s.storeByID[id]
	return st, ok
}

// Customer looks up a customer by its id.
func (s *Service) Customer(id string) (entity.Customer, bool) {
	c, ok := s.customerByID[id]
	return c, ok
}

// PurchaserOf returns the most recent customer who bought the given product,
// according to the static transaction index.
func (s *Service) PurchaserOf(productID string) (entity.Customer, bool) {
	for i := len(s.transactions) - 1; i >= 0; i-- {
		t := s.transactions[i]
		if t.ProductID != productID {
			continue
		}
		if c, ok := s.customerByID[t.CustomerID]; ok {
			return c, true
		}
	}
	return entity.Customer{}, false
}
