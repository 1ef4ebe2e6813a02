package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
)

const redisKeyNamespace = "slf"

// redisCmdable is the slice of the redis client the store depends on,
// narrow enough to stub in tests without a live server.
type redisCmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// RedisStore persists the history array as a JSON string under a namespaced
// key. Keys never expire; history eviction is the archiver's job.
type RedisStore struct {
	client redisCmdable
	key    string
	ctx    context.Context
}

func NewRedisStore(ctx context.Context, client redisCmdable, storageKey string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    redisKeyNamespace + ":" + storageKey,
		ctx:    ctx,
	}
}

func (s *RedisStore) Load() ([]Record, error) {
	raw, err := s.client.Get(s.ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading history key")
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, nil
	}
	return records, nil
}

func (s *RedisStore) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encoding history")
	}
	if err := s.client.Set(s.ctx, s.key, string(raw), 0).Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "writing history key")
	}
	return nil
}
