package resolver

import (
	"fmt"
	"testing"
)

func TestCache(t *testing.T) {
	t.Run("get and put", func(t *testing.T) {
		c := NewCache(10)

		if _, ok := c.Get("missing"); ok {
			t.Error("expected miss for absent key")
		}

		c.Put("a", "vid-a")
		got, ok := c.Get("a")
		if !ok || got != "vid-a" {
			t.Errorf("expected vid-a, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("FIFO eviction at capacity", func(t *testing.T) {
		capacity := 5
		c := NewCache(capacity)

		for i := 0; i < capacity+1; i++ {
			c.Put(fmt.Sprintf("key-%d", i), fmt.Sprintf("vid-%d", i))
		}

		if c.Len() != capacity {
			t.Fatalf("expected %d entries, got %d", capacity, c.Len())
		}

		if _, ok := c.Get("key-0"); ok {
			t.Error("expected first-inserted key to be evicted")
		}
		for i := 1; i <= capacity; i++ {
			if _, ok := c.Get(fmt.Sprintf("key-%d", i)); !ok {
				t.Errorf("expected key-%d to survive", i)
			}
		}
	})

	t.Run("reads do not promote", func(t *testing.T) {
		c := NewCache(3)
		c.Put("a", "1")
		c.Put("b", "2")
		c.Put("c", "3")

		// Touch the oldest entry, then overflow. Insertion order, not access
		// order, decides the victim.
		c.Get("a")
		c.Put("d", "4")

		if _, ok := c.Get("a"); ok {
			t.Error("expected oldest-inserted entry to be evicted despite recent read")
		}
		if _, ok := c.Get("b"); !ok {
			t.Error("expected b to survive")
		}
	})

	t.Run("re-put keeps age", func(t *testing.T) {
		c := NewCache(2)
		c.Put("a", "1")
		c.Put("b", "2")
		c.Put("a", "updated")

		c.Put("c", "3")

		if _, ok := c.Get("a"); ok {
			t.Error("expected a to be evicted as oldest despite update")
		}
		if got, _ := c.Get("b"); got != "2" {
			t.Errorf("expected b to survive, got %q", got)
		}
	})

	t.Run("keys in insertion order", func(t *testing.T) {
		c := NewCache(3)
		c.Put("x", "1")
		c.Put("y", "2")
		c.Put("z", "3")

		keys := c.Keys()
		want := []string{"x", "y", "z"}
		if len(keys) != len(want) {
			t.Fatalf("expected %d keys, got %d", len(want), len(keys))
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
			}
		}
	})

	t.Run("clear", func(t *testing.T) {
		c := NewCache(3)
		c.Put("a", "1")
		c.Clear()

		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", c.Len())
		}
	})

	t.Run("default capacity", func(t *testing.T) {
		c := NewCache(0)
		if c.capacity != defaultCacheCapacity {
			t.Errorf("expected default capacity %d, got %d", defaultCacheCapacity, c.capacity)
		}
	})
}
