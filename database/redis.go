package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"kucukaslan/bridge/config"
	"kucukaslan/bridge/domain"
)

var redisClient *redis.Client

// RuleSnapshotMirror persists privacy rule snapshots in Redis so the rule
// state survives restarts and is visible to other bridge instances.
type RuleSnapshotMirror struct {
	*redis.Client
}

const RuleSnapshotKey = "bridge_privacy_rules"

// StoreSnapshot replaces the mirrored snapshot with the given state
func (r RuleSnapshotMirror) StoreSnapshot(ctx context.Context, snap domain.RuleSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize rule snapshot: %w", err)
	}
	return r.Set(ctx, RuleSnapshotKey, string(data), 0).Err()
}

// LoadSnapshot retrieves the mirrored snapshot. It returns (nil, nil) when no
// snapshot has been stored yet.
func (r RuleSnapshotMirror) LoadSnapshot(ctx context.Context) (domain.RuleSnapshot, error) {
	data, err := r.Get(ctx, RuleSnapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap domain.RuleSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize rule snapshot: %w", err)
	}
	return snap, nil
}

// InitRedis initializes the Redis client connection
func InitRedis(cfg *config.RedisConfig) error {
	addr := cfg.GetRedisAddr()

	opts := &redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0, // default DB
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	redisClient = client
	log.Println("Redis connection established successfully")
	return nil
}

// CloseRedis closes the Redis client connection
func CloseRedis() error {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
		log.Println("Redis connection closed")
	}
	return nil
}

// RedisHealthCheck verifies that the Redis connection is alive
func RedisHealthCheck(ctx context.Context) error {
	if redisClient == nil {
		return fmt.Errorf("Redis connection is not initialized")
	}
	return redisClient.Ping(ctx).Err()
}

// GetRuleSnapshotMirror returns the Redis-backed rule snapshot mirror
func GetRuleSnapshotMirror() RuleSnapshotMirror {
	return RuleSnapshotMirror{redisClient}
}
