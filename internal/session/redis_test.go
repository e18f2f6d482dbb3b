package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestRedisPutRejectsAlreadyExpiredSession(t *testing.T) {
	// The TTL check fires before any command is sent, so the client
	// never needs a reachable server.
	r := NewRedisRegistry(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	err := r.Put(context.Background(), "tok", &Session{
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err, "storing nothing while login hands out the token would strand the caller")
}
