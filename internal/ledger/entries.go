package ledger

import (
	"context"
	"fmt"
	"math"
	"time"

	"dairypro/backend/internal/domain"
	"dairypro/backend/internal/xid"
)

// AddEntry records one delivery: it appends the entry, adds the rounded
// amount to the customer's balance and mirrors the entry into the
// customer's history. All validation happens before the first mutation,
// so a failed call leaves the store untouched.
func (s *Service) AddEntry(ctx context.Context, location string, req domain.EntryCreateRequest) (domain.Entry, error) {
	if err := validQty(req.Qty); err != nil {
		return domain.Entry{}, err
	}
	if err := validRate(req.Rate); err != nil {
		return domain.Entry{}, err
	}

	date := req.Date
	if date == "" {
		date = s.now().Format(domain.DateLayout)
	}
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%w: date %q is not a calendar date", ErrValidation, req.Date)
	}
	date = parsed.Format(domain.DateLayout)

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.Entry{}, err
	}
	ci := findCustomer(loc, req.CustomerID)
	if ci < 0 {
		return domain.Entry{}, fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
	}
	pi := findProduct(loc, req.ProductID)
	if pi < 0 {
		return domain.Entry{}, fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
	}

	cust := &loc.Customers[ci]
	prod := loc.Products[pi]

	entry := domain.Entry{
		ID:           xid.New("entry"),
		Date:         date,
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		ProductID:    prod.ID,
		ProductName:  prod.Name,
		Qty:          req.Qty,
		Rate:         req.Rate,
		Amount:       round2(req.Qty * req.Rate),
	}

	loc.Entries = append(loc.Entries, entry)
	cust.Balance = round2(cust.Balance + entry.Amount)
	cust.History = append(cust.History, domain.HistoryItem{
		EntryID: entry.ID,
		Date:    entry.Date,
		Product: entry.ProductName,
		Qty:     entry.Qty,
		Rate:    entry.Rate,
		Amount:  entry.Amount,
	})

	if err := s.persist(ctx); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// DeleteEntry reverses one delivery. Deleting an id that does not exist
// succeeds silently and leaves the store untouched.
func (s *Service) DeleteEntry(ctx context.Context, location string, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return err
	}

	idx := -1
	for i := range loc.Entries {
		if loc.Entries[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	entry := loc.Entries[idx]
	if ci := findCustomer(loc, entry.CustomerID); ci >= 0 {
		cust := &loc.Customers[ci]
		cust.Balance = round2(cust.Balance - entry.Amount)
		cust.History = removeHistoryItem(cust.History, entry.ID)
	}
	loc.Entries = append(loc.Entries[:idx], loc.Entries[idx+1:]...)

	return s.persist(ctx)
}

// removeHistoryItem drops the history item linked to entryID. The link by
// entry id makes the match exact even when two deliveries share date, qty
// and amount.
func removeHistoryItem(history []domain.HistoryItem, entryID string) []domain.HistoryItem {
	for i := range history {
		if history[i].EntryID == entryID {
			return append(history[:i], history[i+1:]...)
		}
	}
	return history
}

func validQty(qty float64) error {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return fmt.Errorf("%w: qty must be a finite number", ErrValidation)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: qty must be greater than zero", ErrValidation)
	}
	return nil
}

// validRate allows zero: a free delivery is a legal entry.
func validRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate must be a finite number", ErrValidation)
	}
	if rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrValidation)
	}
	return nil
}
