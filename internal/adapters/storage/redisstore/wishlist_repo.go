// Package redisstore guarda en Redis los datos por usuario que conviene que sobrevivan a un reinicio.
package redisstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/domain/wishlist"

	"github.com/go-redis/redis/v8"
)

const defaultKeyPrefix = "petshop:wishlist"

// WishlistRepo usa un sorted set por usuario: score = momento del alta, así List respeta el orden.
type WishlistRepo struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

var _ wishlist.Repository = (*WishlistRepo)(nil)

// NewClient abre un cliente desde una URL redis://[:password@]host:port/db y hace ping.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redisstore: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping: %w", err)
	}
	return client, nil
}

func NewWishlistRepo(client *redis.Client, keyPrefix string) *WishlistRepo {
	if strings.TrimSpace(keyPrefix) == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &WishlistRepo{client: client, keyPrefix: keyPrefix, now: time.Now}
}

func (r *WishlistRepo) key(userID string) string {
	return r.keyPrefix + ":" + userID
}

func (r *WishlistRepo) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.client.ZRange(ctx, r.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list wishlist: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add es idempotente: NX no actualiza el score de un producto ya guardado.
func (r *WishlistRepo) Add(ctx context.Context, userID, productID string) error {
	z := &redis.Z{Score: float64(r.now().UnixNano()), Member: productID}
	if err := r.client.ZAddNX(ctx, r.key(userID), z).Err(); err != nil {
		return fmt.Errorf("redisstore: add to wishlist: %w", err)
	}
	return nil
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	if err := r.client.ZRem(ctx, r.key(userID), productID).Err(); err != nil {
		return fmt.Errorf("redisstore: remove from wishlist: %w", err)
	}
	return nil
}
