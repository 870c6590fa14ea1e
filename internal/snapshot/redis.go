package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

const (
	cartKeyPrefix     = "cart:"
	wishlistKeyPrefix = "wishlist:"
)

// RedisStore keeps snapshots in Redis under TTL'd per-session keys.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) SaveCart(ctx context.Context, sessionID string, lines []domain.LineItem) error {
	data, err := json.Marshal(cartRecord{Version: SchemaVersion, Lines: lines})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadCart(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get cart snapshot: %w", err)
	}
	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	if rec.Version != SchemaVersion {
		return nil, nil
	}
	return rec.Lines, nil
}

func (s *RedisStore) SaveWishlist(ctx context.Context, sessionID string, items []domain.WishlistItem) error {
	data, err := json.Marshal(wishlistRecord{Version: SchemaVersion, Items: items})
	if err != nil {
		return fmt.Errorf("marshal wishlist snapshot: %w", err)
	}
	if err := s.client.Set(ctx, wishlistKeyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadWishlist(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	data, err := s.client.Get(ctx, wishlistKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get wishlist snapshot: %w", err)
	}
	var rec wishlistRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal wishlist snapshot: %w", err)
	}
	if rec.Version != SchemaVersion {
		return nil, nil
	}
	return rec.Items, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID, wishlistKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del snapshots: %w", err)
	}
	return nil
}
