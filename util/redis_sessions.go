package util

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/embryo-ai/config"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func userSessionsKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// StoreSession records token as "<userID>:<role>" under session:<token> and tracks it in the
// per-user set. It is a no-op when Redis is not configured.
func StoreSession(ctx context.Context, token string, userID uint, role string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Set(ctx, sessionKey(token), fmt.Sprintf("%d:%s", userID, role), ttl).Err(); err != nil {
		return err
	}
	return AddSessionToUserSet(ctx, userID, token, ttl)
}

// AddSessionToUserSet adds the token to user_sessions:<id> and extends the set's TTL.
func AddSessionToUserSet(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSessionsKey(userID)
	if err := rdb.SAdd(ctx, key, token).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, key, ttl).Err()
}

// LookupSession returns the user id and role stored for token.
func LookupSession(ctx context.Context, token string) (uint, string, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, "", ErrSessionNotFound
	}
	val, err := rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, "", ErrSessionNotFound
	}
	if err != nil {
		return 0, "", err
	}
	idPart, role, found := strings.Cut(val, ":")
	if !found {
		return 0, "", fmt.Errorf("malformed session value %q", val)
	}
	uid, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || uid == 0 {
		return 0, "", fmt.Errorf("malformed session user id %q", idPart)
	}
	return uint(uid), role, nil
}

// InvalidateUserSessions deletes every session:<token> of the user and the per-user set.
func InvalidateUserSessions(ctx context.Context, userID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSessionsKey(userID)
	members, err := rdb.SMembers(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	for _, tok := range members {
		_ = rdb.Del(ctx, sessionKey(tok)).Err()
	}
	return rdb.Del(ctx, key).Err()
}
