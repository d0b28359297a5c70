package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
)

// Cache redis cache
type Cache struct {
	Client *redis.Client
}

// New create new cache
func New(config *Config) *Cache {
	cache := &Cache{}
	cache.Client = redis.NewClient(&redis.Options{
		Addr:     getCacheURL(config),
		Password: config.Password,
	})
	return cache
}

// Close cache
func (c *Cache) Close() error {
	return c.Client.Close()
}

func getCacheURL(config *Config) string {
	return fmt.Sprintf("%s:%s", config.Host, config.Port)
}

// SetOnce records key if it was never seen, returning true on first
// sight. The TTL bounds the de-duplication window.
func (c *Cache) SetOnce(key string, ttl time.Duration) (bool, error) {
	return c.Client.SetNX(key, "1", ttl).Result()
}

// DeleteValue - delete value string by key
func (c *Cache) DeleteValue(key string) error {
	return c.Client.Del(key).Err()
}

// Publish - publish a message on a channel
func (c *Cache) Publish(channel string, val string) error {
	return c.Client.Publish(channel, val).Err()
}
