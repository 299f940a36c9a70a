package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/pkg/errors"
)

// KeyValueStore is the get/set/remove capability the analysis state and
// response cache are written against. A missing key is reported with ok=false
// and a nil error.
type KeyValueStore interface {
	GetRaw(ctx context.Context, key string) (value []byte, ok bool, err error)
	SetRaw(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Purge(ctx context.Context, pattern string) (int64, error)
	Close() error
}

var (
	_ KeyValueStore = (*CacheService)(nil)
	_ KeyValueStore = (*MemoryStore)(nil)
)

// GetJSON decodes the value stored at key into dest.
func GetJSON(ctx context.Context, store KeyValueStore, key string, dest any) (bool, error) {
	data, ok, err := store.GetRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.NewCacheError("unmarshal failed", "get", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, store KeyValueStore, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}
	return store.SetRaw(ctx, key, data, ttl)
}

// SentimentKey is where the raw /api/sentiment/ response for a video is cached.
func SentimentKey(videoID string, commentCount int) string {
	return fmt.Sprintf("%s:%s:%d", constants.StorageKeys.SentimentPrefix, videoID, commentCount)
}

func ReportKey(videoID string, commentCount int) string {
	return fmt.Sprintf("%s:%s:%d", constants.StorageKeys.ReportPrefix, videoID, commentCount)
}

// ResponsePatterns match every cached analysis response.
func ResponsePatterns() []string {
	return []string{
		constants.StorageKeys.SentimentPrefix + ":*",
		constants.StorageKeys.ReportPrefix + ":*",
	}
}
