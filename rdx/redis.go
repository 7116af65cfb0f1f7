package rdx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client and pings it so a bad address fails at startup.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return conn, nil
}

// Cache stores generated text with a TTL. Redis failures read as misses.
type Cache struct {
	conn   redis.Cmdable
	ttl    time.Duration
	logger *log.Logger
}

func NewCache(conn redis.Cmdable, ttl time.Duration, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{conn: conn, ttl: ttl, logger: logger}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Printf("Redis GET %s error: %v", key, err)
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, value string) {
	if err := c.conn.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Printf("Redis SET %s error: %v", key, err)
	}
}
