package cache

import (
	"errors"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1, time.Minute)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get() = %v, %v, want 1, true", v, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() returned ok for missing key")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1, -time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned ok for expired key")
	}
}

func TestGetOrSet(t *testing.T) {
	c := New[string, string]()

	calls := 0
	fn := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", time.Minute, fn)
		if err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		if v != "value" {
			t.Errorf("GetOrSet() = %q, want %q", v, "value")
		}
	}

	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestGetOrSetError(t *testing.T) {
	c := New[string, string]()

	wantErr := errors.New("boom")
	_, err := c.GetOrSet("k", time.Minute, func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("GetOrSet() error = %v, want %v", err, wantErr)
	}

	// Errors must not be cached.
	if _, ok := c.Get("k"); ok {
		t.Error("Get() returned ok after failed GetOrSet")
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1, time.Minute)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned ok after Delete")
	}
}
