package cache

import (
	"testing"
	"time"
)

func TestRealTimeStore_MaxAgeAtRead(t *testing.T) {
	clock := newFakeClock()
	store := NewRealTimeStore(clock)

	store.Set("stock:7", 42)
	clock.Advance(3 * time.Second)

	t.Run("tight window misses", func(t *testing.T) {
		if _, ok := store.Get("stock:7", time.Second); ok {
			t.Error("Get() hit inside 1s window for 3s-old value")
		}
	})

	t.Run("loose window hits the same entry", func(t *testing.T) {
		value, ok := store.Get("stock:7", time.Minute)
		if !ok {
			t.Fatal("Get() miss inside 1m window")
		}
		if value != 42 {
			t.Errorf("Get() = %v, want 42", value)
		}
	})

	t.Run("stale read does not purge", func(t *testing.T) {
		if store.Len() != 1 {
			t.Errorf("Len() = %d after stale read, want 1", store.Len())
		}
	})
}

func TestRealTimeStore_UnlimitedAge(t *testing.T) {
	clock := newFakeClock()
	store := NewRealTimeStore(clock)

	store.Set("k", "v")
	clock.Advance(365 * 24 * time.Hour)

	if _, ok := store.Get("k", 0); !ok {
		t.Error("Get() with maxAge 0 rejected an old value")
	}
}

func TestRealTimeStore_BoundaryAndAbsent(t *testing.T) {
	clock := newFakeClock()
	store := NewRealTimeStore(clock)

	store.Set("k", "v")
	clock.Advance(time.Second)

	// A value exactly maxAge old is no longer fresh.
	if _, ok := store.Get("k", time.Second); ok {
		t.Error("Get() hit at exactly maxAge, want miss")
	}

	if _, ok := store.Get("absent", time.Minute); ok {
		t.Error("Get() hit for absent key")
	}
}

func TestRealTimeStore_DeleteAndClear(t *testing.T) {
	clock := newFakeClock()
	store := NewRealTimeStore(clock)

	store.Set("a", 1)
	store.Set("b", 2)

	store.Delete("a")
	if _, ok := store.Get("a", 0); ok {
		t.Error("Get() hit after Delete()")
	}

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", store.Len())
	}
}
