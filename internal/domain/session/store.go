package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

const keyPrefix = "session:"

// Store keeps live sessions so they can be revoked and switched between organizations
type Store interface {
	Create(ctx context.Context, s *tenant.Session) error
	Get(ctx context.Context, id string) (*tenant.Session, error)
	SetActiveOrganization(ctx context.Context, id, organizationID string) error
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (s *redisStore) Create(ctx context.Context, sess *tenant.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	key := sessionKey(sess.ID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"user_id", sess.UserID,
		"organization_id", sess.OrganizationID,
		"expires_at", sess.ExpiresAt.UTC().Format(time.RFC3339),
	)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*tenant.Session, error) {
	values, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(values) == 0 || values["user_id"] == "" {
		return nil, ErrSessionNotFound
	}

	sess := &tenant.Session{
		ID:             id,
		UserID:         values["user_id"],
		OrganizationID: values["organization_id"],
	}
	if exp, err := time.Parse(time.RFC3339, values["expires_at"]); err == nil {
		sess.ExpiresAt = exp
	}
	return sess, nil
}

func (s *redisStore) SetActiveOrganization(ctx context.Context, id, organizationID string) error {
	key := sessionKey(id)
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	if err := s.client.HSet(ctx, key, "organization_id", organizationID).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
