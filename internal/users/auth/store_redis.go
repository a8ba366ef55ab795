// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/platform/constants"
)

// # Redis Repositories

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Sessions are stored as JSON under a key derived from the refresh token
// digest, with the key TTL matching the session lifetime. Expiry therefore
// needs no background sweeper, and revocation is a single DEL.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the Redis key for a session token digest.
func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Create persists a new tracking session for an authenticated login.

Description: The key TTL is derived from the session's ExpiresAt, so the
entry disappears from Redis the moment the refresh token would stop being
honored anyway.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Serialization or connectivity failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	timeToLive := time.Until(session.ExpiresAt)
	if timeToLive <= 0 {
		return apperr.ValidationError("Session expiry must be in the future")
	}

	if err := repository.client.Set(context, sessionKey(session.TokenHash), payload, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the active session matching the given token hash.

Description: An absent key means the session was revoked or has expired;
both surface as NotFound to the caller.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound or connectivity failures
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {

	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}
	session.TokenHash = tokenHash

	return &session, nil
}

/*
Revoke permanently invalidates the session with the given token hash.

Description: Deletion is idempotent; revoking an already-gone session is
not an error.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Connectivity failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {

	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_del_failed: %w", err)
	}

	return nil
}
