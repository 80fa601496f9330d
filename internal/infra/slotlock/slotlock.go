// Package slotlock serialises booking attempts for one slot across API
// instances. The database index stays the final word; the lock only keeps
// concurrent losers from reaching the transaction.
package slotlock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrHeld = errors.New("slot lock held")

type Release func()

type Locker interface {
	Acquire(ctx context.Context, date, hm string) (Release, error)
}

func Key(date, hm string) string {
	return "slot:" + date + ":" + hm
}

// --------------------------------------------------
// Nop
// --------------------------------------------------

type Nop struct{}

func (Nop) Acquire(context.Context, string, string) (Release, error) {
	return func() {}, nil
}

// --------------------------------------------------
// Redis
// --------------------------------------------------

// release deletes the key only when it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, log *slog.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, log: log.With("module", "slotlock")}
}

// Dial parses a redis:// URL and pings the server.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (r *Redis) Acquire(ctx context.Context, date, hm string) (Release, error) {
	key := Key(date, hm)
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}

	return func() { r.release(key, token) }, nil
}

// release failures only delay the slot until the TTL expires.
func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := release.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
		r.log.Warn("slotlock.release.failed", "key", key, "err", err)
	}
}
