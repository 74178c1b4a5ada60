package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
)

func TestCache_DisabledIsNoop(t *testing.T) {
	c, err := NewCache(&config.RedisConfig{TTL: time.Minute}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if c.Enabled() {
		t.Fatal("cache without address should be disabled")
	}

	ctx := context.Background()
	if err := c.SetJSON(ctx, "beers:AZ", []string{"a"}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got []string
	found, err := c.GetJSON(ctx, "beers:AZ", &got)
	if err != nil || found {
		t.Fatalf("GetJSON = (%v, %v), want miss", found, err)
	}
	if n, err := c.Incr(ctx, "beers:AZ:gen"); err != nil || n != 0 {
		t.Fatalf("Incr = (%d, %v), want 0", n, err)
	}
	if n, err := c.GetInt(ctx, "beers:AZ:gen"); err != nil || n != 0 {
		t.Fatalf("GetInt = (%d, %v), want 0", n, err)
	}
	if err := c.Delete(ctx, "beers:AZ"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCache_NilReceiver(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatal("nil cache should be disabled")
	}
}
