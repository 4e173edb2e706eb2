package snapshot

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"dairypro/backend/internal/domain"
)

// Redis stores the snapshot document under a single key with no expiry.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(addr string, password string, db int, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Redis{client: client, key: key}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Load(ctx context.Context) (*domain.Snapshot, bool, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (r *Redis) Save(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, payload, 0).Err()
}
