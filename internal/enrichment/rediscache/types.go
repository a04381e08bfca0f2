package rediscache

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Client is the part of the redis client used by the cache.
	Client interface {
		MGet(ctx context.Context, keys ...string) *redis.SliceCmd
		Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	}

	// Source is the source consulted on cache misses.
	Source interface {
		Outputs(ctx context.Context, txids []string) (map[string][]enrichment.Output, error)
	}

	Metrics interface {
		ObserveCache(hits, misses int)
	}
)
