package session

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	s := &Session{ID: "s1", Agent: "tester", CreatedAt: time.Now(), LastSeen: time.Now()}
	if err := m.Set(ctx, s, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := m.Get(ctx, "s1")
	if err != nil || got.ID != "s1" || got.Agent != "tester" {
		t.Fatalf("get: %v %v", got, err)
	}

	if err := m.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, "s1"); !IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMemory_SweepExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_ = m.Set(ctx, &Session{ID: "short"}, time.Millisecond)
	_ = m.Set(ctx, &Session{ID: "long"}, time.Minute)

	time.Sleep(5 * time.Millisecond)
	swept, err := m.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}
	if _, err := m.Get(ctx, "long"); err != nil {
		t.Fatalf("live session must survive sweep: %v", err)
	}
	if _, err := m.Get(ctx, "short"); !IsNotFound(err) {
		t.Fatalf("expired session must be gone, got %v", err)
	}
}

func TestNew_DefaultsToMemory(t *testing.T) {
	st, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := st.(*Mem); !ok {
		t.Fatalf("empty driver should yield memory store, got %T", st)
	}
}
