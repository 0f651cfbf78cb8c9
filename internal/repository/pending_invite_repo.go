package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingInviteRepository holds the invite code a signed-out visitor
// accepted, keyed by an anonymous session token, until auth completes.
// This is the server-side stand-in for the single client-local key the
// browser flow used.
type PendingInviteRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPendingInviteRepository(rdb *redis.Client, ttl time.Duration) *PendingInviteRepository {
	return &PendingInviteRepository{rdb: rdb, ttl: ttl}
}

func (r *PendingInviteRepository) key(token string) string {
	return fmt.Sprintf("pending_invite:%s", token)
}

// Save stores the code under the session token. A token holds at most one
// code; a second save overwrites the first.
func (r *PendingInviteRepository) Save(ctx context.Context, token, code string) error {
	return r.rdb.Set(ctx, r.key(token), code, r.ttl).Err()
}

// Consume reads and clears the pending code in one step, so only the
// first caller after auth sees it. Returns "" when nothing is pending.
func (r *PendingInviteRepository) Consume(ctx context.Context, token string) (string, error) {
	code, err := r.rdb.GetDel(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}
