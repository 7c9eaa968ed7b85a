package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](4)
	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache hit")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d", c.Len())
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 || s.Capacity != 4 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := range 3 {
		c.Set(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Set(3, 3)

	if _, ok := c.Get(1); ok {
		t.Error("least recently used entry survived")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCacheMinimumCapacity(t *testing.T) {
	c := New[int, int](0)
	c.Set(1, 1)
	c.Set(2, 2)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get(2); !ok {
		t.Error("newest entry missing")
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, int](8)
	var calls atomic.Int32
	create := func() int { calls.Add(1); return 7 }

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v := c.GetOrCreate(1, create); v != 7 {
				t.Errorf("GetOrCreate() = %d", v)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("create called %d times, want 1", calls.Load())
	}
	if s := c.Stats(); s.Hits != 15 || s.Misses != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCacheClear(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Get(1)
	c.Clear()
	if c.Len() != 0 || c.Stats().Hits != 0 {
		t.Errorf("after Clear: %+v", c.Stats())
	}
	c.Set(2, 2)
	if v, ok := c.Get(2); !ok || v != 2 {
		t.Error("cache unusable after Clear")
	}
}
