package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dairypro/backend/internal/domain"
)

// Dashboard sums qty and amount over the location's entries that fall in
// the same calendar month as referenceDate. Customer and entry counts are
// all-time, not just the month.
func (s *Service) Dashboard(location string, referenceDate time.Time) (domain.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.Dashboard{}, err
	}

	// Dates are canonical YYYY-MM-DD, so a month filter is a prefix match.
	monthPrefix := referenceDate.Format("2006-01") + "-"

	dash := domain.Dashboard{
		Location:      location,
		Month:         referenceDate.Format("2006-01"),
		CustomerCount: len(loc.Customers),
		EntryCount:    len(loc.Entries),
	}
	for _, e := range loc.Entries {
		if !strings.HasPrefix(e.Date, monthPrefix) {
			continue
		}
		dash.MonthQty = round2(dash.MonthQty + e.Qty)
		dash.MonthAmount = round2(dash.MonthAmount + e.Amount)
	}
	return dash, nil
}

// MonthlySummary totals one calendar month and breaks qty down per
// customer name, in order of each customer's first entry that month.
func (s *Service) MonthlySummary(location string, year int, month int) (domain.MonthlySummary, error) {
	if year < 1 || month < 1 || month > 12 {
		return domain.MonthlySummary{}, fmt.Errorf("%w: %04d-%02d is not a calendar month", ErrValidation, year, month)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := s.location(location)
	if err != nil {
		return domain.MonthlySummary{}, err
	}

	monthPrefix := fmt.Sprintf("%04d-%02d-", year, month)

	summary := domain.MonthlySummary{
		Location:  location,
		Year:      year,
		Month:     month,
		Customers: []domain.CustomerTotal{},
	}
	rowByName := make(map[string]int)

	for _, e := range loc.Entries {
		if !strings.HasPrefix(e.Date, monthPrefix) {
			continue
		}
		summary.TotalQty = round2(summary.TotalQty + e.Qty)
		summary.TotalAmount = round2(summary.TotalAmount + e.Amount)

		row, seen := rowByName[e.CustomerName]
		if !seen {
			row = len(summary.Customers)
			rowByName[e.CustomerName] = row
			summary.Customers = append(summary.Customers, domain.CustomerTotal{CustomerName: e.CustomerName})
		}
		summary.Customers[row].Qty = round2(summary.Customers[row].Qty + e.Qty)
	}
	return summary, nil
}

// Search matches the query case-insensitively against every customer and
// product name across all locations, returning at most
// domain.SearchResultLimit results. Locations are walked in sorted order
// so results are stable.
func (s *Service) Search(query string) ([]domain.SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.snap.Locations))
	for name := range s.snap.Locations {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]domain.SearchResult, 0, 16)
	for _, locName := range names {
		loc := s.snap.Locations[locName]
		for _, c := range loc.Customers {
			if len(results) >= domain.SearchResultLimit {
				return results, nil
			}
			if strings.Contains(strings.ToLower(c.Name), needle) {
				results = append(results, domain.SearchResult{
					Kind:     domain.KindCustomer,
					ID:       c.ID,
					Name:     c.Name,
					Location: locName,
				})
			}
		}
		for _, p := range loc.Products {
			if len(results) >= domain.SearchResultLimit {
				return results, nil
			}
			if strings.Contains(strings.ToLower(p.Name), needle) {
				results = append(results, domain.SearchResult{
					Kind:     domain.KindProduct,
					ID:       p.ID,
					Name:     p.Name,
					Location: locName,
				})
			}
		}
	}
	return results, nil
}
