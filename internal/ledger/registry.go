package ledger

import (
	"context"
	"fmt"
	"strings"

	"dairypro/backend/internal/domain"
	"dairypro/backend/internal/xid"
)

// CreateLocation inserts an empty location and makes it the active
// selection.
func (s *Service) CreateLocation(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: location name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snap.Locations[name]; exists {
		return fmt.Errorf("%w: location %q", ErrConflict, name)
	}

	s.snap.Locations[name] = domain.NewLocation()
	s.active = name
	return s.persist(ctx)
}

// DeleteLocation discards the location with all its customers, products
// and entries. Deleting the active selection moves it to an arbitrary
// remaining location, or to none when the store is empty.
func (s *Service) DeleteLocation(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snap.Locations[name]; !exists {
		return nil
	}

	delete(s.snap.Locations, name)
	if s.active == name {
		s.active = s.firstLocation()
	}
	return s.persist(ctx)
}

// SelectLocation moves the active selection. Selection is runtime state,
// not part of the snapshot, so nothing is persisted.
func (s *Service) SelectLocation(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snap.Locations[name]; !exists {
		return fmt.Errorf("%w: location %q", ErrNotFound, name)
	}
	s.active = name
	return nil
}

func (s *Service) AddCustomer(ctx context.Context, location string, req domain.CustomerCreateRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		ID:      xid.New("cust"),
		Name:    name,
		Phone:   strings.TrimSpace(req.Phone),
		Balance: 0,
		History: []domain.HistoryItem{},
	}
	loc.Customers = append(loc.Customers, customer)

	if err := s.persist(ctx); err != nil {
		return domain.Customer{}, err
	}
	return copyCustomer(customer), nil
}

// EditCustomer renames a customer and optionally replaces the phone.
// Balance and history are untouched, and name snapshots on existing
// entries stay as they were recorded.
func (s *Service) EditCustomer(ctx context.Context, location string, id string, req domain.CustomerUpdateRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.Customer{}, err
	}
	idx := findCustomer(loc, id)
	if idx < 0 {
		return domain.Customer{}, fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}

	loc.Customers[idx].Name = name
	if req.Phone != nil {
		loc.Customers[idx].Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.persist(ctx); err != nil {
		return domain.Customer{}, err
	}
	return copyCustomer(loc.Customers[idx]), nil
}

// DeleteCustomer removes the customer and every entry referencing them.
// The entries go with their owner, so no balance reversal applies.
// Deleting an unknown id is a no-op.
func (s *Service) DeleteCustomer(ctx context.Context, location string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return err
	}
	idx := findCustomer(loc, id)
	if idx < 0 {
		return nil
	}

	loc.Customers = append(loc.Customers[:idx], loc.Customers[idx+1:]...)

	kept := loc.Entries[:0]
	for _, e := range loc.Entries {
		if e.CustomerID != id {
			kept = append(kept, e)
		}
	}
	loc.Entries = kept

	return s.persist(ctx)
}

func (s *Service) AddProduct(ctx context.Context, location string, req domain.ProductCreateRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if err := validRate(req.Rate); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:   xid.New("prod"),
		Name: name,
		Rate: req.Rate,
	}
	loc.Products = append(loc.Products, product)

	if err := s.persist(ctx); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) EditProduct(ctx context.Context, location string, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if err := validRate(req.Rate); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.Product{}, err
	}
	idx := findProduct(loc, id)
	if idx < 0 {
		return domain.Product{}, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	loc.Products[idx].Name = name
	loc.Products[idx].Rate = req.Rate

	if err := s.persist(ctx); err != nil {
		return domain.Product{}, err
	}
	return loc.Products[idx], nil
}

// DeleteProduct removes the product and every entry referencing it, and
// reverses the affected customers' balances and history so balances keep
// matching the entries that remain. The legacy app skipped the reversal
// and left balances stale; that was a consistency bug, not behavior worth
// keeping. Deleting an unknown id is a no-op.
func (s *Service) DeleteProduct(ctx context.Context, location string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return err
	}
	idx := findProduct(loc, id)
	if idx < 0 {
		return nil
	}

	loc.Products = append(loc.Products[:idx], loc.Products[idx+1:]...)

	kept := loc.Entries[:0]
	for _, e := range loc.Entries {
		if e.ProductID != id {
			kept = append(kept, e)
			continue
		}
		if ci := findCustomer(loc, e.CustomerID); ci >= 0 {
			cust := &loc.Customers[ci]
			cust.Balance = round2(cust.Balance - e.Amount)
			cust.History = removeHistoryItem(cust.History, e.ID)
		}
	}
	loc.Entries = kept

	return s.persist(ctx)
}
