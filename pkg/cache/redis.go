package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the redis client used by the throttle middleware
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
