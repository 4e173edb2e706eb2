package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"dairypro/backend/internal/domain"
)

// Postgres stores the snapshot as a single jsonb row keyed by the snapshot
// key. The whole-document model is deliberate: the ledger is small and is
// always read and written as one unit.
type Postgres struct {
	db  *sql.DB
	key string
}

func NewPostgres(ctx context.Context, databaseURL string, key string) (*Postgres, error) {
	if key == "" {
		key = DefaultKey
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dairy_snapshots (
			key        text PRIMARY KEY,
			payload    jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Postgres{db: db, key: key}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Load(ctx context.Context) (*domain.Snapshot, bool, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT payload FROM dairy_snapshots WHERE key = $1
	`, p.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (p *Postgres) Save(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO dairy_snapshots (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()
	`, p.key, payload)
	return err
}
