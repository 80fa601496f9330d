package slotlock

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dental-lab/internal/logger"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "slot:2026-03-11:10:00", Key("2026-03-11", "10:00"))
}

func TestNop(t *testing.T) {
	rel, err := Nop{}.Acquire(context.Background(), "2026-03-11", "10:00")
	require.NoError(t, err)
	assert.NotPanics(t, func() { rel() })
}

func TestRedis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := Dial(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	l := NewRedis(client, 5*time.Second, logger.Discard())
	date := "2099-01-01"

	rel, err := l.Acquire(ctx, date, "10:00")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, date, "10:00")
	assert.ErrorIs(t, err, ErrHeld)

	rel()

	rel2, err := l.Acquire(ctx, date, "10:00")
	require.NoError(t, err)
	rel2()
}

func TestRedis_ReleaseFailureIsLogged(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	l := NewRedis(client, 5*time.Second, log)
	l.release(Key("2099-01-01", "10:00"), "token")

	assert.Contains(t, buf.String(), "slotlock.release.failed")
	assert.Contains(t, buf.String(), "slot:2099-01-01:10:00")
}
