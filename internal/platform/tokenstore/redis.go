package tokenstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"newsdesk/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

// RefreshStore tracks live refresh-token IDs. A refresh token is honored only
// while its jti is present; deleting the key revokes it.
type RefreshStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

type redisRefreshStore struct {
	rdb *redis.Client
}

func NewRedisRefreshStore(rdb *redis.Client) RefreshStore {
	return &redisRefreshStore{rdb: rdb}
}

func refreshKey(jti string) string {
	return "refresh:" + jti
}

func (s *redisRefreshStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKey(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redisRefreshStore.Save: %w", err)
	}
	return nil
}

func (s *redisRefreshStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, refreshKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redisRefreshStore.Exists: %w", err)
	}
	return n > 0, nil
}

func (s *redisRefreshStore) Revoke(ctx context.Context, jti string) error {
	if err := s.rdb.Del(ctx, refreshKey(jti)).Err(); err != nil {
		return fmt.Errorf("redisRefreshStore.Revoke: %w", err)
	}
	return nil
}
