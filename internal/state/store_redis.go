package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "aerodns:state:"

// RedisStore persists aircraft state as JSON values under a key prefix. This
// is the recommended backend when multiple instances share one fleet.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func stateKey(tail string) string {
	return stateKeyPrefix + tail
}

func (s *RedisStore) Get(ctx context.Context, tail string) (AircraftState, error) {
	data, err := s.client.Get(ctx, stateKey(tail)).Bytes()
	if errors.Is(err, redis.Nil) {
		return AircraftState{}, ErrNotFound
	}
	if err != nil {
		return AircraftState{}, fmt.Errorf("get aircraft state: %w", err)
	}
	var st AircraftState
	if err := json.Unmarshal(data, &st); err != nil {
		return AircraftState{}, fmt.Errorf("decode aircraft state %s: %w", tail, err)
	}
	return st, nil
}

func (s *RedisStore) Put(ctx context.Context, st AircraftState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode aircraft state %s: %w", st.Tail, err)
	}
	// No TTL: records live until explicitly deleted.
	if err := s.client.Set(ctx, stateKey(st.Tail), data, 0).Err(); err != nil {
		return fmt.Errorf("put aircraft state: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, tail string) error {
	n, err := s.client.Del(ctx, stateKey(tail)).Result()
	if err != nil {
		return fmt.Errorf("delete aircraft state: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) DeleteAll(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, stateKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan aircraft state keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete aircraft state keys: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]AircraftState, error) {
	iter := s.client.Scan(ctx, 0, stateKeyPrefix+"*", 0).Iterator()
	var out []AircraftState
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // deleted between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("get aircraft state %s: %w", iter.Val(), err)
		}
		var st AircraftState
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("decode aircraft state %s: %w", iter.Val(), err)
		}
		out = append(out, st)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan aircraft state keys: %w", err)
	}
	return out, nil
}
