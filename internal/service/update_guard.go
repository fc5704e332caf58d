package service

import (
	"context"
	"fmt"
	"time"

	"eviden-bot/internal/repository/memory"

	"github.com/redis/go-redis/v9"
)

// IUpdateGuard drops Telegram redeliveries of an update that was already accepted.
type IUpdateGuard interface {
	// Claim returns true the first time updateId is seen.
	Claim(ctx context.Context, updateId int) (bool, error)
}

type redisUpdateGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

type memoryUpdateGuard struct {
	registry *memory.UpdateRegistry
}

// NewUpdateGuard uses Redis when a client is given so every replica shares the claims.
// Without one it falls back to a per-process registry.
func NewUpdateGuard(rdb *redis.Client, ttl time.Duration) IUpdateGuard {
	if rdb == nil {
		return &memoryUpdateGuard{registry: memory.NewUpdateRegistry(ttl)}
	}
	return &redisUpdateGuard{rdb: rdb, ttl: ttl}
}

func (g *redisUpdateGuard) Claim(ctx context.Context, updateId int) (bool, error) {
	key := fmt.Sprintf("eviden:update:%d", updateId)
	ok, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim update %d: %w", updateId, err)
	}
	return ok, nil
}

func (g *memoryUpdateGuard) Claim(ctx context.Context, updateId int) (bool, error) {
	return g.registry.Claim(updateId), nil
}
