// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/constants"
)

// RedisCodeRepository implements CodeRepository using Redis.
//
// Keys are prefixed with the confirmation-code namespace and expire via the
// native Redis TTL, so stale codes never need explicit cleanup.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores a hashed confirmation code for a username with a TTL.

Parameters:
  - context: context.Context
  - username: string
  - codeHash: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Set(context context.Context, username, codeHash string, ttl time.Duration) error {

	key := constants.RedisPrefixConfirmationCode + username

	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the hashed confirmation code for a username.

Description: Returns apperr.NotFound if the code is absent or expired.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: Hashed code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context context.Context, username string) (string, error) {

	key := constants.RedisPrefixConfirmationCode + username

	codeHash, err := repository.client.Get(context, key).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code is invalid or expired")
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	return codeHash, nil
}

/*
Delete removes the confirmation code after successful use.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisCodeRepository) Delete(context context.Context, username string) error {

	key := constants.RedisPrefixConfirmationCode + username

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_delete_failed: %w", err)
	}

	return nil
}
