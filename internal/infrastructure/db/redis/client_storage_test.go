package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestClientStorage_SetGetDelete(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, time.Hour)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "ctx-1", "theme"); err != nil || ok {
		t.Fatalf("missing field must be reported as absent, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "ctx-1", "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := mr.HGet("rifa:ctx:ctx-1", "theme"); got != "dark" {
		t.Fatalf("expected field in the context hash, got %q", got)
	}
	v, ok, err := s.Get(ctx, "ctx-1", "theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("unexpected get %q %v %v", v, ok, err)
	}

	if err := s.Delete(ctx, "ctx-1", "theme", "token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "ctx-1", "theme"); ok {
		t.Fatalf("deleted field must be gone")
	}
}

func TestClientStorage_SetManyWritesEveryField(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, time.Hour)
	ctx := context.Background()

	err := s.SetMany(ctx, "ctx-1", map[string]string{"user": `{"userId":7}`, "token": "tok"})
	if err != nil {
		t.Fatalf("set many: %v", err)
	}
	user, token := mr.HGet("rifa:ctx:ctx-1", "user"), mr.HGet("rifa:ctx:ctx-1", "token")
	if user != `{"userId":7}` || token != "tok" {
		t.Fatalf("expected both fields stored, got user=%q token=%q", user, token)
	}
	if ttl := mr.TTL("rifa:ctx:ctx-1"); ttl != time.Hour {
		t.Fatalf("expected expiry of one hour, got %v", ttl)
	}
}

func TestClientStorage_SetManyFailureStoresNothing(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, time.Hour)
	ctx := context.Background()

	mr.SetError("READONLY You can't write against a read only replica.")
	err := s.SetMany(ctx, "ctx-1", map[string]string{"user": "u", "token": "t"})
	mr.SetError("")

	if err == nil {
		t.Fatalf("expected the write to fail")
	}
	if mr.Exists("rifa:ctx:ctx-1") {
		t.Fatalf("a failed write must leave no fields behind")
	}
}

func TestClientStorage_WritesAndTouchSlideExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, time.Hour)
	ctx := context.Background()
	key := "rifa:ctx:ctx-1"

	_ = s.Set(ctx, "ctx-1", "token", "tok")
	mr.FastForward(40 * time.Minute)
	if ttl := mr.TTL(key); ttl != 20*time.Minute {
		t.Fatalf("expected 20m left, got %v", ttl)
	}

	if err := s.Touch(ctx, "ctx-1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("touch must slide the expiry, got %v", ttl)
	}

	mr.FastForward(30 * time.Minute)
	_ = s.Set(ctx, "ctx-1", "theme", "dark")
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("writes must slide the expiry, got %v", ttl)
	}

	mr.FastForward(time.Hour + time.Second)
	if _, ok, err := s.Get(ctx, "ctx-1", "token"); ok || err != nil {
		t.Fatalf("expired hash must read as absent, got ok=%v err=%v", ok, err)
	}
}

func TestClientStorage_TouchOnMissingHash(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, time.Hour)

	if err := s.Touch(context.Background(), "nobody"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if mr.Exists("rifa:ctx:nobody") {
		t.Fatalf("touch must not create the hash")
	}
}

func TestClientStorage_ServerErrorIsNotAbsence(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, time.Hour)

	mr.SetError("LOADING Redis is loading the dataset in memory")
	defer mr.SetError("")

	if _, ok, err := s.Get(context.Background(), "ctx-1", "user"); err == nil || ok {
		t.Fatalf("expected an error, got ok=%v err=%v", ok, err)
	}
}

func TestNewClientStorage_DefaultTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewClientStorage(client, 0)

	_ = s.Set(context.Background(), "ctx-1", "theme", "light")
	if ttl := mr.TTL("rifa:ctx:ctx-1"); ttl != defaultSessionTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultSessionTTL, ttl)
	}
}
