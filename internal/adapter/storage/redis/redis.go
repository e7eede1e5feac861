package redis

import (
	"context"
	"fmt"
	"time"

	"serving-broker/config"

	"github.com/cenkalti/backoff/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// connectTries bounds the startup ping loop; the broker often starts
// alongside its Redis container.
const connectTries = 5

// NewClient creates a Redis client and waits for it to answer a PING.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := client.Ping(ctx).Err()
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("addr", cfg.Addr()).Msg("redis not ready")
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(connectTries))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Int("attempts", attempt).
		Msg("Redis connection established")

	return client, nil
}
