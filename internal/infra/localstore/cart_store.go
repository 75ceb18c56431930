package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// cartRecord is the whole persisted value. Only the items survive a restart.
type cartRecord struct {
	Items []entity.CartItem `json:"items"`
}

// CartStore implements repository.LocalCartRepository with one Redis string per session.
type CartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewCartStore is the constructor for CartStore.
func NewCartStore(client *redis.Client, cfg *config.Config) repository.LocalCartRepository {
	return newCartStore(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
}

func newCartStore(client *redis.Client, keyPrefix string, ttl time.Duration) *CartStore {
	return &CartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Load returns the stored items. A missing key is an empty cart.
func (s *CartStore) Load(ctx context.Context, sessionID string) ([]entity.CartItem, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []entity.CartItem{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get failed")
	}

	var record cartRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "unmarshal cart record failed")
	}
	if record.Items == nil {
		record.Items = []entity.CartItem{}
	}

	return record.Items, nil
}

// Save overwrites the record. A zero TTL keeps it forever; otherwise every save refreshes it.
func (s *CartStore) Save(ctx context.Context, sessionID string, items []entity.CartItem) error {
	if items == nil {
		items = []entity.CartItem{}
	}

	data, err := json.Marshal(cartRecord{Items: items})
	if err != nil {
		return errors.Wrap(err, "marshal cart record failed")
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}

	return nil
}

func (s *CartStore) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, sessionID)
}
