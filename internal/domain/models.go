package domain

// DateLayout is the calendar-date format used throughout the ledger.
// Entries carry dates only, never times.
const DateLayout = "2006-01-02"

// Snapshot is the whole persisted store: every location keyed by its
// unique, case-sensitive name. This is the exact document written to and
// read from the persistence sink.
type Snapshot struct {
	Locations map[string]*Location `json:"locations"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{Locations: make(map[string]*Location)}
}

// Location is an independent ledger scope. Entries are kept in insertion
// order, which is the chronological entry order (not sorted by date).
type Location struct {
	Customers []Customer `json:"customers"`
	Products  []Product  `json:"products"`
	Entries   []Entry    `json:"entries"`
}

func NewLocation() *Location {
	return &Location{
		Customers: []Customer{},
		Products:  []Product{},
		Entries:   []Entry{},
	}
}

type Customer struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Phone   string        `json:"phone,omitempty"`
	Balance float64       `json:"balance"`
	History []HistoryItem `json:"history"`
}

type Product struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// Entry is one delivery transaction. CustomerName and ProductName are
// snapshots taken at entry time and are never updated retroactively when
// the customer or product is later renamed.
type Entry struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Qty          float64 `json:"qty"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
}

// HistoryItem is a customer-owned projection of one entry. EntryID links
// it back to the originating entry so deletion matches exactly even when
// two deliveries share date, qty and amount.
type HistoryItem struct {
	EntryID string  `json:"entryId"`
	Date    string  `json:"date"`
	Product string  `json:"product"`
	Qty     float64 `json:"qty"`
	Rate    float64 `json:"rate"`
	Amount  float64 `json:"amount"`
}

type LocationCreateRequest struct {
	Name string `json:"name"`
}

type CustomerCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CustomerUpdateRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

type ProductCreateRequest struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type ProductUpdateRequest struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type EntryCreateRequest struct {
	CustomerID string  `json:"customer_id"`
	ProductID  string  `json:"product_id"`
	Date       string  `json:"date,omitempty"`
	Qty        float64 `json:"qty"`
	Rate       float64 `json:"rate"`
}

// Dashboard reports the reference month's delivery totals plus all-time
// customer and entry counts for one location.
type Dashboard struct {
	Location      string  `json:"location"`
	Month         string  `json:"month"`
	MonthQty      float64 `json:"month_qty"`
	MonthAmount   float64 `json:"month_amount"`
	CustomerCount int     `json:"customer_count"`
	EntryCount    int     `json:"entry_count"`
}

// CustomerTotal is one row of a monthly summary. Rows appear in order of
// each customer's first entry within the month.
type CustomerTotal struct {
	CustomerName string  `json:"customer_name"`
	Qty          float64 `json:"qty"`
}

type MonthlySummary struct {
	Location    string          `json:"location"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalQty    float64         `json:"total_qty"`
	TotalAmount float64         `json:"total_amount"`
	Customers   []CustomerTotal `json:"customers"`
}

type SearchResult struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

const (
	KindCustomer = "customer"
	KindProduct  = "product"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// SearchResultLimit caps cross-location search responses.
const SearchResultLimit = 50
