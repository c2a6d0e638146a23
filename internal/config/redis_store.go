package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const redisMaxUpdateAttempts = 10

// RedisStoreConfig holds configuration for the Redis-backed document store.
type RedisStoreConfig struct {
	// Addr is the Redis server address (e.g., "localhost:6379")
	Addr string
	// Password for Redis authentication (optional)
	Password string
	// DB is the Redis database number
	DB int
	// Key holds the whole JSON document (default: "postgen:config")
	Key string
}

// RedisStore keeps the document under a single Redis string key. Updates use
// WATCH/MULTI and retry when another writer touched the key in between.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection with a PING.
func NewRedisStore(cfg RedisStoreConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = "postgen:config"
	}
	return &RedisStore{client: client, key: key, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Seed stores doc only if the key does not exist yet. It reports whether it wrote.
func (s *RedisStore) Seed(ctx context.Context, doc []byte) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key, doc, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to seed %s: %w", s.key, err)
	}
	return ok, nil
}

func (s *RedisStore) LoadAppConfig(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: redis key %s", ErrDocumentNotFound, s.key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("redis key %s does not hold valid JSON", s.key)
	}
	return data, nil
}

func (s *RedisStore) SaveAppConfig(ctx context.Context, doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return errors.New("refusing to save invalid JSON app config")
	}
	if err := s.client.Set(ctx, s.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) UpdateAppConfig(ctx context.Context, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: redis key %s", ErrDocumentNotFound, s.key)
			}
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if !gjson.ValidBytes(next) {
			return errors.New("refusing to save invalid JSON app config")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= redisMaxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.logger.Debug("app config update raced, retrying", zap.Int("attempt", attempt))
	}
	return fmt.Errorf("failed to update %s: too many concurrent writers", s.key)
}

var _ AppConfigService = (*RedisStore)(nil)
