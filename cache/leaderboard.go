// Package cache keeps computed hackathon leaderboards in redis so the public
// leaderboard page does not reload every team document on each request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dosada05/hackathon-platform/judging"
)

// ErrMiss is returned by Get when nothing is cached.
var ErrMiss = errors.New("cache miss")

const defaultLeaderboardTTL = 5 * time.Minute

type LeaderboardCache interface {
	Get(ctx context.Context, hackathonID string) ([]judging.Standing, error)
	Set(ctx context.Context, hackathonID string, standings []judging.Standing) error
	Invalidate(ctx context.Context, hackathonID string) error
}

type RedisLeaderboard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, address, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisLeaderboard(client *redis.Client, ttl time.Duration) *RedisLeaderboard {
	if ttl <= 0 {
		ttl = defaultLeaderboardTTL
	}
	return &RedisLeaderboard{client: client, ttl: ttl}
}

func leaderboardKey(hackathonID string) string {
	return "hackathon:" + hackathonID + ":leaderboard"
}

func (c *RedisLeaderboard) Get(ctx context.Context, hackathonID string) ([]judging.Standing, error) {
	data, err := c.client.Get(ctx, leaderboardKey(hackathonID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get leaderboard: %w", err)
	}
	var standings []judging.Standing
	if err := json.Unmarshal(data, &standings); err != nil {
		return nil, fmt.Errorf("decode cached leaderboard: %w", err)
	}
	return standings, nil
}

func (c *RedisLeaderboard) Set(ctx context.Context, hackathonID string, standings []judging.Standing) error {
	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := c.client.Set(ctx, leaderboardKey(hackathonID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set leaderboard: %w", err)
	}
	return nil
}

func (c *RedisLeaderboard) Invalidate(ctx context.Context, hackathonID string) error {
	if err := c.client.Del(ctx, leaderboardKey(hackathonID)).Err(); err != nil {
		return fmt.Errorf("redis del leaderboard: %w", err)
	}
	return nil
}

// Noop is used when redis is not configured: every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]judging.Standing, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []judging.Standing) error   { return nil }
func (Noop) Invalidate(context.Context, string) error                { return nil }
