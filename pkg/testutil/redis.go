package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for xredis.Client.
type MockRedisClient struct {
	zsets   map[string]map[string]float64
	objects map[string][]byte
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		zsets:   map[string]map[string]float64{},
		objects: map[string][]byte{},
	}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if _, ok := c.zsets[key]; ok {
		return true, nil
	}

	_, ok := c.objects[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.zsets, key)
		delete(c.objects, key)
	}

	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	member, ok := z.Member.(string)
	if !ok {
		return errors.New("member must be a string")
	}

	if c.zsets[key] == nil {
		c.zsets[key] = map[string]float64{}
	}

	c.zsets[key][member] = z.Score
	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if c.zsets[key] == nil {
		c.zsets[key] = map[string]float64{}
	}

	c.zsets[key][member] += float64(incr)
	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	all := c.sorted(key)
	if offset >= len(all) {
		return nil, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (c *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	for i, z := range c.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (c *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	c.objects[key] = b
	return nil
}

func (c *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	b, ok := c.objects[key]
	if !ok {
		return redis.Nil
	}

	return json.Unmarshal(b, v)
}

func (c *MockRedisClient) sorted(key string) []redis.Z {
	zs := make([]redis.Z, 0, len(c.zsets[key]))
	for member, score := range c.zsets[key] {
		zs = append(zs, redis.Z{Member: member, Score: score})
	}

	sort.Slice(zs, func(i, j int) bool {
		if zs[i].Score != zs[j].Score {
			return zs[i].Score > zs[j].Score
		}

		return zs[i].Member.(string) > zs[j].Member.(string)
	})

	return zs
}
