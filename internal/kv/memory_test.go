package kv

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemoryStore()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Errorf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := s.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.Set(ctx, "b", "2")

	value, ok, err := s.Get(ctx, "a")
	if err != nil || !ok || value != "1" {
		t.Errorf("Get(a) = %q ok=%v err=%v", value, ok, err)
	}

	keys, err := s.GetAllKeys(ctx)
	if err != nil || len(keys) != 2 {
		t.Errorf("GetAllKeys() = %v err=%v, want 2 keys", keys, err)
	}

	// MultiGet preserves request order and drops missing keys.
	pairs, err := s.MultiGet(ctx, []string{"b", "missing", "a"})
	if err != nil {
		t.Fatalf("MultiGet() error = %v", err)
	}
	if len(pairs) != 2 || pairs[0].Key != "b" || pairs[1].Key != "a" {
		t.Errorf("MultiGet() = %v", pairs)
	}

	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("key still present after Remove")
	}

	// Removing an absent key is a no-op.
	if err := s.Remove(ctx, "a"); err != nil {
		t.Errorf("Remove(absent) error = %v", err)
	}
}
