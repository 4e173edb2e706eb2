package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dairypro/backend/internal/domain"
)

func TestDashboardCountsMonthAndAllTime(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customerID, productID := seedLedger(t, svc)

	for _, e := range []struct {
		date string
		qty  float64
	}{
		{"2024-05-01", 2},
		{"2024-05-20", 3},
		{"2024-04-30", 4}, // previous month, counted all-time only
	} {
		if _, err := svc.AddEntry(ctx, "Main Farm", domain.EntryCreateRequest{
			CustomerID: customerID, ProductID: productID, Date: e.date, Qty: e.qty, Rate: 50,
		}); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	dash, err := svc.Dashboard("Main Farm", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dash.MonthQty != 5.00 {
		t.Fatalf("expected month qty 5.00, got %v", dash.MonthQty)
	}
	if dash.MonthAmount != 250.00 {
		t.Fatalf("expected month amount 250.00, got %v", dash.MonthAmount)
	}
	if dash.CustomerCount != 1 {
		t.Fatalf("expected 1 customer, got %d", dash.CustomerCount)
	}
	if dash.EntryCount != 3 {
		t.Fatalf("expected 3 entries all-time, got %d", dash.EntryCount)
	}

	if _, err := svc.Dashboard("Nowhere", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMonthlySummaryTotalsPerCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ashaID, productID := seedLedger(t, svc)

	ravi, err := svc.AddCustomer(ctx, "Main Farm", domain.CustomerCreateRequest{Name: "Ravi"})
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}

	// Asha: qty 2 @50 and qty 3 @50 on different May dates; Ravi in
	// between so insertion order of first occurrence is observable.
	entries := []struct {
		cid  string
		date string
		qty  float64
	}{
		{ashaID, "2024-05-01", 2},
		{ravi.ID, "2024-05-03", 1.5},
		{ashaID, "2024-05-10", 3},
		{ravi.ID, "2024-06-01", 9}, // outside the month
	}
	for _, e := range entries {
		if _, err := svc.AddEntry(ctx, "Main Farm", domain.EntryCreateRequest{
			CustomerID: e.cid, ProductID: productID, Date: e.date, Qty: e.qty, Rate: 50,
		}); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	summary, err := svc.MonthlySummary("Main Farm", 2024, 5)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalQty != 6.50 {
		t.Fatalf("expected total qty 6.50, got %v", summary.TotalQty)
	}
	if summary.TotalAmount != 325.00 {
		t.Fatalf("expected total amount 325.00, got %v", summary.TotalAmount)
	}
	if len(summary.Customers) != 2 {
		t.Fatalf("expected 2 customer rows, got %d", len(summary.Customers))
	}
	if summary.Customers[0].CustomerName != "Asha" || summary.Customers[0].Qty != 5.00 {
		t.Fatalf("expected Asha first with qty 5.00, got %+v", summary.Customers[0])
	}
	if summary.Customers[1].CustomerName != "Ravi" || summary.Customers[1].Qty != 1.50 {
		t.Fatalf("expected Ravi with qty 1.50, got %+v", summary.Customers[1])
	}

	if _, err := svc.MonthlySummary("Main Farm", 2024, 13); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for month 13, got %v", err)
	}
}

func TestSearchIsCaseInsensitiveAcrossLocations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedLedger(t, svc)

	if err := svc.CreateLocation(ctx, "North Dairy"); err != nil {
		t.Fatalf("create location: %v", err)
	}
	if _, err := svc.AddCustomer(ctx, "North Dairy", domain.CustomerCreateRequest{Name: "Ashank"}); err != nil {
		t.Fatalf("add customer: %v", err)
	}
	if _, err := svc.AddProduct(ctx, "North Dairy", domain.ProductCreateRequest{Name: "Buttermilk", Rate: 20}); err != nil {
		t.Fatalf("add product: %v", err)
	}

	results, err := svc.Search("ASH")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %+v", results)
	}
	// Locations walk in sorted order: Main Farm before North Dairy.
	if results[0].Name != "Asha" || results[0].Location != "Main Farm" || results[0].Kind != domain.KindCustomer {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[1].Name != "Ashank" || results[1].Location != "North Dairy" {
		t.Fatalf("unexpected second result %+v", results[1])
	}

	milk, err := svc.Search("milk")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(milk) != 2 { // Milk and Buttermilk
		t.Fatalf("expected Milk and Buttermilk, got %+v", milk)
	}
}

func TestSearchRejectsEmptyQueryAndCapsResults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Search(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
	if _, err := svc.Search("   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for whitespace query, got %v", err)
	}

	for i := 0; i < domain.SearchResultLimit+10; i++ {
		if _, err := svc.AddCustomer(ctx, "Main Farm", domain.CustomerCreateRequest{Name: fmt.Sprintf("Buyer %02d", i)}); err != nil {
			t.Fatalf("add customer: %v", err)
		}
	}

	results, err := svc.Search("buyer")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != domain.SearchResultLimit {
		t.Fatalf("expected %d results, got %d", domain.SearchResultLimit, len(results))
	}
}
