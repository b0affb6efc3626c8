package cache

import (
	"testing"
	"time"
)

// fakeClock advances only when told to, so TTL expiry is exercised without
// wall-clock sleeps.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTTLCache_HitBeforeExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := New[string, int](60*time.Second, clk.now)

	c.Set("week", 42)

	clk.advance(59 * time.Second)
	got, ok := c.Get("week")
	if !ok {
		t.Fatal("expected cache hit before expiry")
	}
	if got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestTTLCache_MissAfterExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := New[string, int](60*time.Second, clk.now)

	c.Set("all", 7)

	clk.advance(61 * time.Second)
	if _, ok := c.Get("all"); ok {
		t.Error("expected cache miss after expiry")
	}
}

func TestTTLCache_MissUnknownKey(t *testing.T) {
	c := New[string, int](time.Minute, nil)
	if _, ok := c.Get("nothing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestTTLCache_SetRefreshesExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := New[string, string](60*time.Second, clk.now)

	c.Set("month", "v1")
	clk.advance(45 * time.Second)
	c.Set("month", "v2")
	clk.advance(45 * time.Second)

	got, ok := c.Get("month")
	if !ok {
		t.Fatal("expected hit: second Set should refresh expiry")
	}
	if got != "v2" {
		t.Errorf("Get() = %q, want %q", got, "v2")
	}
}

func TestTTLCache_Invalidate(t *testing.T) {
	c := New[string, int](time.Minute, nil)
	c.Set("all", 1)
	c.Invalidate("all")
	if _, ok := c.Get("all"); ok {
		t.Error("expected miss after Invalidate")
	}
}
