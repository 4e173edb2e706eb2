package snapshot

import (
	"context"

	"dairypro/backend/internal/domain"
)

// Store persists the whole ledger as a single keyed document. Load reports
// absent=false when no snapshot has ever been saved, which is not an error.
type Store interface {
	Load(ctx context.Context) (*domain.Snapshot, bool, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}

// DefaultKey is the record key the snapshot is stored under. It is kept
// equal to the legacy app's storage key so existing exports stay readable.
const DefaultKey = "dairy_pro_v1"
