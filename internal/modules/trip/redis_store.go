package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "journeo:trip:"
	redisIndexKey  = "journeo:trips"
	redisSeqKey    = "journeo:trips:seq"
)

// RedisStore keeps one JSON value per record plus a sorted set, scored by an
// INCR sequence, that preserves insertion order.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func recordKey(id string) string { return redisKeyPrefix + id }

func (s *RedisStore) Save(ctx context.Context, rec Record) (Record, error) {
	rec = stamp(rec)
	b, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("trip.RedisStore.Save: marshal: %w", err)
	}
	seq, err := s.rdb.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return Record{}, fmt.Errorf("trip.RedisStore.Save: seq: %w", err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(rec.ID), b, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(seq), Member: rec.ID})
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("trip.RedisStore.Save: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	ids, err := s.rdb.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("trip.RedisStore.List: %w", err)
	}
	out := make([]Record, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("trip.RedisStore.List: mget: %w", err)
	}
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue // deleted between ZRANGE and MGET
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("trip.RedisStore.List: decode: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	raw, err := s.rdb.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("trip.RedisStore.Get: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("trip.RedisStore.Get: decode: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, recordKey(id))
		pipe.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("trip.RedisStore.Delete: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("trip.RedisStore.Delete: %w", ErrNotFound)
	}
	return nil
}
