package redisCache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// Repo caches downloaded illustrations in redis keyed by search phrase.
type Repo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRepo(config *configs.Config) *Repo {
	client := redis.NewClient(&redis.Options{
		Addr:         config.RD.Host,
		DB:           config.RD.DB,
		Username:     config.RD.User,
		Password:     config.RD.Password,
		MaxRetries:   config.RD.MaxRetries,
		DialTimeout:  config.RD.DialTimeout,
		ReadTimeout:  config.RD.ReadTimeout,
		WriteTimeout: config.RD.WriteTimeout,
	})
	return &Repo{
		client: client,
		ttl:    config.RD.ImageTTL,
	}
}

func (r *Repo) GetImage(ctx context.Context, phrase string) ([]byte, error) {
	const op = "redisCache.GetImage"

	data, err := r.client.Get(ctx, key(phrase)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (r *Repo) SetImage(ctx context.Context, phrase string, data []byte) error {
	const op = "redisCache.SetImage"

	if err := r.client.Set(ctx, key(phrase), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repo) Close() error {
	return r.client.Close()
}

func key(phrase string) string {
	return "illustration:" + phrase
}
