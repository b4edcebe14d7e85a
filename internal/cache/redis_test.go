package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := DialRedis(ctx, RedisConfig{Addr: addr, Prefix: "scoreboard-test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, ok, err := store.Get(ctx, "news"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "news", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := store.Get(ctx, "news")
	if err != nil || !ok || string(got) != "payload" {
		t.Fatalf("expected hit, got %q ok=%v err=%v", got, ok, err)
	}
	if err := store.Delete(ctx, "news"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestDialRedisRejectsBadURL(t *testing.T) {
	if _, err := DialRedis(context.Background(), RedisConfig{URL: "http://nope"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	s := NewRedisStore(nil, "app:")
	if got := s.key("news"); got != "app:news" {
		t.Fatalf("unexpected key %s", got)
	}
}
