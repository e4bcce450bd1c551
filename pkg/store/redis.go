package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/terradyn/geomodel/pkg/ecp"
	"github.com/terradyn/geomodel/pkg/errors"
)

const redisKeyPrefix = "geomodel:doc:"

// RedisStore persists documents in Redis, one key per document name.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore creates a Redis-backed document store for the given address.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: goredis.NewClient(&goredis.Options{Addr: addr})}
}

// NewRedisStoreWithClient wraps an existing client, e.g. one configured
// with authentication or TLS.
func NewRedisStoreWithClient(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(name string) string { return redisKeyPrefix + name }

func (s *RedisStore) Save(ctx context.Context, name string, doc *ecp.Document) (*Record, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	rec, err := newRecord(name, doc)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(name), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("redis set %s: %w", name, err)
	}
	return rec, nil
}

func (s *RedisStore) Load(ctx context.Context, name string) (*ecp.Document, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, redisKey(name)).Bytes()
	if err == goredis.Nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", name, err)
	}
	return decodeRecord(&rec)
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := s.client.Del(ctx, redisKey(name)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", name, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return names, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
