package snapshot

import (
	"context"
	"encoding/json"
	"sync"

	"dairypro/backend/internal/domain"
)

// Memory keeps the snapshot in process memory. It is the test double and
// the fallback when no durable sink is configured.
type Memory struct {
	mu      sync.Mutex
	payload []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*domain.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.payload == nil {
		return nil, false, nil
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(m.payload, &snap); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (m *Memory) Save(_ context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.payload = payload
	m.mu.Unlock()
	return nil
}
