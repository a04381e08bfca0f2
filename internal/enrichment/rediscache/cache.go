// Package rediscache caches previous transaction outputs in Redis in front of another
// enrichment source.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix       = "multichain:outputs:"
	defaultCacheTTL = time.Hour
)

// Dial connects and pings Redis.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// CachedSource serves outputs from Redis and falls back to the wrapped source. Cache
// failures degrade to the wrapped source and never fail a lookup.
type CachedSource struct {
	next    Source
	cache   Client
	metrics Metrics
	logger  *zap.Logger
	prefix  string
	ttl     time.Duration
}

var _ enrichment.Source = (*CachedSource)(nil)

func NewCachedSource(next Source, cache Client, metrics Metrics, logger *zap.Logger, c chain.Chain, network chain.Network, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedSource{
		next:    next,
		cache:   cache,
		metrics: metrics,
		logger:  logger.Named("rediscache"),
		prefix:  fmt.Sprintf("%s%s:%s:", keyPrefix, c, network),
		ttl:     ttl,
	}
}

func (s *CachedSource) key(txid string) string {
	return s.prefix + txid
}

func (s *CachedSource) Outputs(ctx context.Context, txids []string) (map[string][]enrichment.Output, error) {
	result := make(map[string][]enrichment.Output, len(txids))
	if len(txids) == 0 {
		return result, nil
	}

	misses := s.lookup(ctx, txids, result)
	s.metrics.ObserveCache(len(txids)-len(misses), len(misses))
	if len(misses) == 0 {
		return result, nil
	}

	fetched, err := s.next.Outputs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for txid, outputs := range fetched {
		result[txid] = outputs
		s.store(ctx, txid, outputs)
	}
	return result, nil
}

func (s *CachedSource) lookup(ctx context.Context, txids []string, result map[string][]enrichment.Output) []string {
	keys := make([]string, len(txids))
	for i, txid := range txids {
		keys[i] = s.key(txid)
	}

	values, err := s.cache.MGet(ctx, keys...).Result()
	if err != nil || len(values) != len(txids) {
		s.logger.Warn("cache lookup failed", zap.Int("keys", len(keys)), zap.Error(err))
		return txids
	}

	misses := make([]string, 0)
	for i, value := range values {
		payload, ok := value.(string)
		if !ok {
			misses = append(misses, txids[i])
			continue
		}
		var outputs []enrichment.Output
		if err := json.Unmarshal([]byte(payload), &outputs); err != nil {
			s.logger.Debug("drop undecodable cache entry", zap.String("key", keys[i]), zap.Error(err))
			misses = append(misses, txids[i])
			continue
		}
		result[txids[i]] = outputs
	}
	return misses
}

func (s *CachedSource) store(ctx context.Context, txid string, outputs []enrichment.Output) {
	payload, err := json.Marshal(outputs)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.key(txid), payload, s.ttl).Err(); err != nil {
		s.logger.Debug("cache store failed", zap.String("txid", txid), zap.Error(err))
	}
}
