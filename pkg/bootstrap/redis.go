package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/jpsember/dev/pkg/config"
	log "github.com/jpsember/dev/pkg/logger"
)

// InitRedis 初始化 Redis 客户端并测试连接
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.Addr).Error("redis初始化失败")
		_ = client.Close()
		return nil, err
	}

	log.Debug("redis initialized successfully")
	return client, nil
}
