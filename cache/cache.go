package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

// Store is the key/value surface the API needs. Redis backs it in production.
type Store interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Close() error
}

func SetJSON(ctx context.Context, s Store, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(data), expiration)
}

func GetJSON(ctx context.Context, s Store, key string, dest interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Keys shared between the handlers that fill and invalidate them.
const (
	KeyMenuAll        = "menu:all"
	KeyMenuCategory   = "menu:category:"
	KeyRestaurantInfo = "restaurant:info"
	KeyRevokedToken   = "token:revoked:"
)
