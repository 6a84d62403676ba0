package cache

import (
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()

	c.Set("k", "v", 10*time.Millisecond)
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected fresh hit, got %v %v", v, ok)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()

	c.Set("k", 42, 0)
	time.Sleep(5 * time.Millisecond)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("expected durable entry, got %v %v", v, ok)
	}
}
