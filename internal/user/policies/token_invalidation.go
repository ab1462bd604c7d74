package policies

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const invalidAfterPrefix = "token_invalid_after:"

// InvalidateUserTokens records a watermark so that access tokens issued to
// the user before now stop verifying. Called after role changes and removals;
// the key only needs to outlive the longest token lifetime. A nil client
// disables invalidation (single-node dev setups).
func InvalidateUserTokens(ctx context.Context, rdb *redis.Client, userID string, ttl time.Duration) {
	if rdb == nil || userID == "" {
		return
	}
	rdb.Set(ctx, invalidAfterPrefix+userID, strconv.FormatInt(time.Now().Unix(), 10), ttl)
}

// TokensInvalidatedSince reports whether tokens issued at issuedAt have been
// revoked by a later watermark. Fails open on Redis errors: availability of
// the revocation list must not take authentication down with it.
func TokensInvalidatedSince(ctx context.Context, rdb *redis.Client, userID string, issuedAt time.Time) bool {
	if rdb == nil || userID == "" || issuedAt.IsZero() {
		return false
	}
	val, err := rdb.Get(ctx, invalidAfterPrefix+userID).Result()
	if err != nil {
		return false
	}
	watermark, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false
	}
	return issuedAt.Unix() <= watermark
}
