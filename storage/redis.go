package storage

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisTimeout = 500 * time.Millisecond

// Redis persists session keys in a Redis instance, so kiosk carts survive
// a storefront process restart. It satisfies the same contract as Memory:
// read failures surface as absence, only writes report errors.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(addr string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{rdb: rdb}, nil
}

func (r *Redis) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	v, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("redis read failed, treating as absent")
		return "", false
	}
	return v, true
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("redis delete failed")
	}
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
