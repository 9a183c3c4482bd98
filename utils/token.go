package utils

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/ambatoeat-api/cache"
)

// TokenBlacklist remembers revoked tokens by their jti until they would have expired anyway.
type TokenBlacklist struct {
	store cache.Store
}

func NewTokenBlacklist(store cache.Store) *TokenBlacklist {
	return &TokenBlacklist{store: store}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, claims *CustomClaims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return b.store.Set(ctx, cache.KeyRevokedToken+claims.ID, "1", ttl)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, claims *CustomClaims) (bool, error) {
	if claims.ID == "" {
		return false, nil
	}
	_, err := b.store.Get(ctx, cache.KeyRevokedToken+claims.ID)
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
