package code_repo

import (
	"context"
	"errors"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "verification_code:"

// Хранилище кодов подтверждения в Redis. Просроченные коды
// убирает TTL, отдельная чистка не нужна.
type repo struct {
	client *redis.Client
}

func NewCodeRepository(client *redis.Client) repository.CodeRepository {
	return &repo{
		client: client,
	}
}

func (r *repo) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	err := r.client.Set(ctx, keyPrefix+phone, code, ttl).Err()
	if err != nil {
		return err
	}
	return nil
}

func (r *repo) Get(ctx context.Context, phone string) (string, error) {
	val, err := r.client.Get(ctx, keyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", model.ErrInvalidCode
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (r *repo) Delete(ctx context.Context, phone string) error {
	err := r.client.Del(ctx, keyPrefix+phone).Err()
	if err != nil {
		return err
	}
	return nil
}
