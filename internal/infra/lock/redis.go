package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
)

const retryInterval = 25 * time.Millisecond

// Only the holder that set the key may delete it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is a DayLocker shared by every instance talking to the same Redis.
// TTL bounds how long a crashed holder can keep a day locked; Wait bounds how
// long Lock polls before giving up with ErrBookingBusy.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
	Wait   time.Duration
}

func NewRedis(client *redis.Client, ttl, wait time.Duration) *Redis {
	return &Redis{Client: client, TTL: ttl, Wait: wait}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	owner := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, r.Wait)
	defer cancel()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.Client.SetNX(waitCtx, key, owner, r.TTL).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return r.releaser(key, owner), nil
		}

		select {
		case <-waitCtx.Done():
			return nil, domain.ErrBookingBusy
		case <-ticker.C:
		}
	}
}

func (r *Redis) releaser(key, owner string) func() {
	return func() {
		// the caller's context may already be done; release on a fresh one
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, r.Client, []string{key}, owner).Err(); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to release reservation lock")
		}
	}
}

var _ domain.DayLocker = (*Redis)(nil)
