package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/singerjob/singerjob/internal/store"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := m.Get(ctx, "k")

	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if string(got) != `{"a":1}` {
		t.Fatalf("got %q", got)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := store.NewMemory()

	_, err := m.Get(context.Background(), "missing")

	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMemoryRemove(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := m.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := m.Get(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v after remove, want ErrNotFound", err)
	}

	// removing an absent key is a no-op
	if err := m.Remove(ctx, "k"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	in := []byte("abc")

	if err := m.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}

	in[0] = 'z'

	got, err := m.Get(ctx, "k")

	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller's slice: %q", got)
	}

	got[0] = 'z'

	again, err := m.Get(ctx, "k")

	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}

func TestMemoryHonorsContext(t *testing.T) {
	m := store.NewMemory()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Set(ctx, "k", []byte("v")); err == nil {
		t.Fatalf("set on cancelled context succeeded")
	}

	if _, err := m.Get(ctx, "k"); err == nil {
		t.Fatalf("get on cancelled context succeeded")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.Save(ctx, m, "r", record{Name: "x", Count: 3}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := store.Load[record](ctx, m, "r")

	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !found {
		t.Fatalf("record not found after save")
	}

	if got.Name != "x" || got.Count != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestCodecAbsentKeyIsNotAnError(t *testing.T) {
	got, found, err := store.Load[[]string](context.Background(), store.NewMemory(), "missing")

	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if found {
		t.Fatalf("found=true for absent key")
	}

	if got != nil {
		t.Fatalf("got %v, want zero value", got)
	}
}

func TestCodecCorruptValue(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "r", []byte("not json")); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, _, err := store.Load[map[string]int](ctx, m, "r")

	if err == nil {
		t.Fatalf("corrupt value decoded without error")
	}
}
