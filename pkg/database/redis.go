package database

import (
	"context"
	"fmt"
	"lawyer_exam_backend/internal/config"
	"time"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects to the translation store. Redis is a soft dependency:
// on ping failure the constructed client is returned together with the
// error, so the caller can run degraded and let the connection recover
// without a restart.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return rdb, err
	}
	return rdb, nil
}
