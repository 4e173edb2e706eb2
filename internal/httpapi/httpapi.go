package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"dairypro/backend/internal/domain"
	"dairypro/backend/internal/ledger"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type API struct {
	service       *ledger.Service
	auth          *AuthManager
	allowedOrigin string
	loginLimiter  *attemptLimiter
}

func New(svc *ledger.Service, auth *AuthManager, allowedOrigin string) *API {
	return &API{
		service:       svc,
		auth:          auth,
		allowedOrigin: allowedOrigin,
		loginLimiter:  newAttemptLimiter(5, time.Minute),
	}
}

type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &attemptLimiter{max: max, window: window, entries: make(map[string][]time.Time)}
}

func (l *attemptLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.entries[key]
	kept := make([]time.Time, 0, len(history)+1)
	for _, ts := range history {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	kept = append(kept, now)
	l.entries[key] = kept
	return true
}

func clientKey(r *http.Request) string {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return "unknown"
	}
	if addr, err := netip.ParseAddrPort(host); err == nil {
		return addr.Addr().String()
	}
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/api/v1/auth/login", a.handleLogin)

	mux.HandleFunc("/api/v1/locations", a.requireAuth(a.handleLocations))
	mux.HandleFunc("/api/v1/locations/active", a.requireAuth(a.handleActiveLocation))
	mux.HandleFunc("/api/v1/locations/", a.requireAuth(a.handleLocationScoped))
	mux.HandleFunc("/api/v1/search", a.requireAuth(a.handleSearch))

	return a.withMiddleware(mux)
}

func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		actor, err := a.auth.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		next(w, r.WithContext(WithActor(r.Context(), actor)))
	}
}

// requireAdmin guards the destructive operations (location delete).
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	actor, ok := ActorFromContext(r.Context())
	if !ok || actor.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, errors.New("admin role required"))
		return false
	}
	return true
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !a.loginLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many login attempts"))
		return
	}

	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := a.auth.Login(req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleLocations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"locations": a.service.Locations(),
			"active":    a.service.ActiveLocation(),
		})
	case http.MethodPost:
		var req domain.LocationCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.service.CreateLocation(r.Context(), req.Name); err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"name": strings.TrimSpace(req.Name)})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleActiveLocation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"active": a.service.ActiveLocation()})
	case http.MethodPut:
		var req domain.LocationCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.service.SelectLocation(req.Name); err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"active": req.Name})
	default:
		writeMethodNotAllowed(w)
	}
}

// handleLocationScoped routes everything under /api/v1/locations/{name}:
// the location itself, its customers, products, entries, and the
// dashboard and summary queries.
func (a *API) handleLocationScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/locations/")
	parts := strings.Split(rest, "/")
	location, err := url.PathUnescape(parts[0])
	if err != nil || location == "" {
		writeError(w, http.StatusBadRequest, errors.New("invalid location path"))
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w)
			return
		}
		if !requireAdmin(w, r) {
			return
		}
		if err := a.service.DeleteLocation(r.Context(), location); err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": location, "active": a.service.ActiveLocation()})
		return
	}

	id := ""
	if len(parts) == 3 {
		id = parts[2]
	}
	if len(parts) > 3 {
		writeError(w, http.StatusNotFound, errors.New("unknown resource"))
		return
	}

	switch parts[1] {
	case "customers":
		a.handleCustomers(w, r, location, id)
	case "products":
		a.handleProducts(w, r, location, id)
	case "entries":
		a.handleEntries(w, r, location, id)
	case "dashboard":
		a.handleDashboard(w, r, location)
	case "summary":
		a.handleSummary(w, r, location)
	default:
		writeError(w, http.StatusNotFound, errors.New("unknown resource"))
	}
}

func (a *API) handleCustomers(w http.ResponseWriter, r *http.Request, location string, id string) {
	switch {
	case id == "" && r.Method == http.MethodGet:
		customers, err := a.service.Customers(location)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
	case id == "" && r.Method == http.MethodPost:
		var req domain.CustomerCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		customer, err := a.service.AddCustomer(r.Context(), location, req)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, customer)
	case id != "" && r.Method == http.MethodGet:
		customer, err := a.service.CustomerByID(location, id)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	case id != "" && r.Method == http.MethodPatch:
		var req domain.CustomerUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		customer, err := a.service.EditCustomer(r.Context(), location, id, req)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	case id != "" && r.Method == http.MethodDelete:
		if err := a.service.DeleteCustomer(r.Context(), location, id); err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleProducts(w http.ResponseWriter, r *http.Request, location string, id string) {
	switch {
	case id == "" && r.Method == http.MethodGet:
		products, err := a.service.Products(location)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	case id == "" && r.Method == http.MethodPost:
		var req domain.ProductCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		product, err := a.service.AddProduct(r.Context(), location, req)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, product)
	case id != "" && r.Method == http.MethodPatch:
		var req domain.ProductUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		product, err := a.service.EditProduct(r.Context(), location, id, req)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	case id != "" && r.Method == http.MethodDelete:
		if err := a.service.DeleteProduct(r.Context(), location, id); err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleEntries(w http.ResponseWriter, r *http.Request, location string, id string) {
	switch {
	case id == "" && r.Method == http.MethodGet:
		entries, err := a.service.Entries(location)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	case id == "" && r.Method == http.MethodPost:
		var req domain.EntryCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := a.service.AddEntry(r.Context(), location, req)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	case id != "" && r.Method == http.MethodDelete:
		if err := a.service.DeleteEntry(r.Context(), location, id); err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request, location string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	reference := time.Now()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
			return
		}
		reference = parsed
	}

	dash, err := a.service.Dashboard(location, reference)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request, location string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil {
		writeError(w, http.StatusBadRequest, errors.New("year and month query params are required"))
		return
	}

	summary, err := a.service.MonthlySummary(location, year, month)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	results, err := a.service.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// writeLedgerError maps the core error taxonomy onto HTTP statuses.
// ErrStorage is 502: the mutation is applied in memory but durability is
// unknown, which the caller needs to distinguish from a plain failure.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, ledger.ErrConflict):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, ledger.ErrStorage):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx responses get a generic message so internal detail never leaks;
	// 4xx responses are user-facing and keep the original message. 502 is
	// the exception: callers must learn the mutation already applied.
	msg := err.Error()
	if status >= 500 && status != http.StatusBadGateway {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
