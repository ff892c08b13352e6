package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/penshort/userlinks/internal/model"
	"github.com/penshort/userlinks/internal/store"
)

const (
	mappingKeyPrefix = "mapping:"
	scanBatchSize    = 100
)

// incrementClicksScript bumps the click counter only when the mapping hash
// exists. Returns the new count, or -1 when the key is absent.
var incrementClicksScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('HINCRBY', KEYS[1], 'clicks', 1)
end
return -1
`)

// MappingStore is a store.Store backed by one Redis hash per short code.
type MappingStore struct {
	cache *Cache
	now   func() time.Time
}

// NewMappingStore creates a Redis-backed mapping store.
func NewMappingStore(c *Cache) *MappingStore {
	return &MappingStore{cache: c, now: time.Now}
}

func mappingKey(code string) string {
	return mappingKeyPrefix + code
}

func codeFromKey(key string) string {
	return strings.TrimPrefix(key, mappingKeyPrefix)
}

// AddMapping replaces the hash for code in a single MULTI/EXEC.
func (s *MappingStore) AddMapping(ctx context.Context, code, url string) (*model.URLMapping, error) {
	mapping := &model.URLMapping{
		ShortCode:   code,
		OriginalURL: url,
		CreatedAt:   s.now().UTC(),
	}
	cached := mapping.ToCachedMapping()
	key := mappingKey(code)

	_, err := s.cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]any{
			"original_url": cached.OriginalURL,
			"created_at":   cached.CreatedAt,
			"clicks":       cached.Clicks,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store mapping: %w", err)
	}

	return mapping, nil
}

// GetMapping reads the hash for code.
func (s *MappingStore) GetMapping(ctx context.Context, code string) (*model.URLMapping, error) {
	result, err := s.cache.client.HGetAll(ctx, mappingKey(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, store.ErrNotFound
	}

	return cachedFromHash(result).ToMapping(code), nil
}

// IncrementClicks atomically adds one click when the mapping exists.
func (s *MappingStore) IncrementClicks(ctx context.Context, code string) (bool, error) {
	n, err := incrementClicksScript.Run(ctx, s.cache.client, []string{mappingKey(code)}).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment clicks: %w", err)
	}
	return n >= 0, nil
}

// Snapshot scans all mapping keys and reads them in one pipeline.
// Keys written while the scan runs may or may not be included.
func (s *MappingStore) Snapshot(ctx context.Context) (map[string]model.URLMapping, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]model.URLMapping, len(keys))
	if len(keys) == 0 {
		return snapshot, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = s.cache.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, key)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read mappings: %w", err)
	}

	for i, cmd := range cmds {
		result, err := cmd.Result()
		if err != nil || len(result) == 0 {
			// Deleted between SCAN and HGETALL.
			continue
		}
		code := codeFromKey(keys[i])
		snapshot[code] = *cachedFromHash(result).ToMapping(code)
	}

	return snapshot, nil
}

// Len counts mapping keys.
func (s *MappingStore) Len(ctx context.Context) (int, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Ping checks Redis connectivity.
func (s *MappingStore) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func (s *MappingStore) scanKeys(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var keys []string
	var cursor uint64

	for {
		var batch []string
		var err error

		batch, cursor, err = s.cache.client.Scan(ctx, cursor, mappingKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan mapping keys: %w", err)
		}

		// SCAN may return a key more than once.
		for _, key := range batch {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}

		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

func cachedFromHash(h map[string]string) *model.CachedMapping {
	return &model.CachedMapping{
		OriginalURL: h["original_url"],
		CreatedAt:   h["created_at"],
		Clicks:      h["clicks"],
	}
}

var _ store.Store = (*MappingStore)(nil)
