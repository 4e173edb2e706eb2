package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"dairypro/backend/internal/domain"
	"dairypro/backend/internal/snapshot"
)

// Service owns the in-memory store and is the only writer to it. Every
// mutating operation updates the store and then writes the whole snapshot
// to the sink; aggregation queries only read.
//
// Operations serialize behind one mutex. The ledger is logically a
// single-writer system, the lock just keeps concurrent HTTP requests from
// interleaving.
type Service struct {
	mu     sync.Mutex
	sink   snapshot.Store
	snap   *domain.Snapshot
	active string
	now    func() time.Time
}

// New loads the snapshot from the sink, seeding a single default location
// when no snapshot exists yet, and selects an initial active location.
func New(ctx context.Context, sink snapshot.Store, seedLocation string) (*Service, error) {
	if seedLocation == "" {
		seedLocation = "Main Farm"
	}

	snap, found, err := sink.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	if !found || snap == nil {
		snap = domain.NewSnapshot()
	}
	if snap.Locations == nil {
		snap.Locations = make(map[string]*domain.Location)
	}

	svc := &Service{
		sink: sink,
		snap: snap,
		now:  time.Now,
	}

	if len(snap.Locations) == 0 {
		snap.Locations[seedLocation] = domain.NewLocation()
		if err := sink.Save(ctx, snap); err != nil {
			return nil, fmt.Errorf("%w: seed: %v", ErrStorage, err)
		}
	}
	svc.active = svc.firstLocation()

	return svc, nil
}

// persist writes the whole snapshot after a mutation. The mutation has
// already happened in memory; a failure here is reported as ErrStorage and
// never rolled back.
func (s *Service) persist(ctx context.Context) error {
	if err := s.sink.Save(ctx, s.snap); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *Service) firstLocation() string {
	names := make([]string, 0, len(s.snap.Locations))
	for name := range s.snap.Locations {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// ActiveLocation reports the current selection, or "" when the store holds
// no locations.
func (s *Service) ActiveLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Locations lists every location name in sorted order.
func (s *Service) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.snap.Locations))
	for name := range s.snap.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Customers lists a location's customers in insertion order.
func (s *Service) Customers(location string) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, len(loc.Customers))
	for i, c := range loc.Customers {
		customers[i] = copyCustomer(c)
	}
	return customers, nil
}

// CustomerByID returns one customer with their full delivery history.
func (s *Service) CustomerByID(location string, id string) (domain.Customer, error) {
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
	return copyCustomer(loc.Customers[idx]), nil
}

// Products lists a location's products in insertion order.
func (s *Service) Products(location string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(loc.Products))
	copy(products, loc.Products)
	return products, nil
}

// Entries lists a location's entries newest first, mirroring how the
// delivery book is read back.
func (s *Service) Entries(location string) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(loc.Entries))
	for i := len(loc.Entries) - 1; i >= 0; i-- {
		entries = append(entries, loc.Entries[i])
	}
	return entries, nil
}

// location resolves a location name. Callers must hold s.mu.
func (s *Service) location(name string) (*domain.Location, error) {
	loc, ok := s.snap.Locations[name]
	if !ok {
		return nil, fmt.Errorf("%w: location %q", ErrNotFound, name)
	}
	return loc, nil
}

func findCustomer(loc *domain.Location, id string) int {
	for i := range loc.Customers {
		if loc.Customers[i].ID == id {
			return i
		}
	}
	return -1
}

func findProduct(loc *domain.Location, id string) int {
	for i := range loc.Products {
		if loc.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func copyCustomer(c domain.Customer) domain.Customer {
	out := c
	out.History = make([]domain.HistoryItem, len(c.History))
	copy(out.History, c.History)
	return out
}

// round2 keeps all money and quantity totals at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
