package lang

import (
	"context"
	"testing"
)

func TestMemoryEnvironment_GetSet(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	rctx := NewContext("guild-1", "alice")

	if _, ok, err := env.Get(ctx, rctx, "atk"); err != nil || ok {
		t.Fatalf("expected miss before Set, got ok=%v err=%v", ok, err)
	}

	if err := env.Set(ctx, rctx, "atk", Integer(7)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	val, ok, err := env.Get(ctx, rctx, "atk")
	if err != nil || !ok {
		t.Fatalf("expected hit after Set, got ok=%v err=%v", ok, err)
	}

	if val != Integer(7) {
		t.Errorf("Get() = %v, want 7", val)
	}
}

func TestMemoryEnvironment_UserIsolation(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	alice := NewContext("guild-1", "alice")
	bob := NewContext("guild-1", "bob")

	if err := env.Set(ctx, alice, "atk", Integer(1)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if _, ok, err := env.Get(ctx, bob, "atk"); err != nil || ok {
		t.Fatalf("expected bob to have no visibility into alice's binding, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryEnvironment_Closure(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	rctx := NewContext("guild-1", "alice")

	if err := env.Set(ctx, rctx, "atk", Integer(5)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	closure, err := env.Closure(ctx, rctx)
	if err != nil {
		t.Fatalf("Closure error: %v", err)
	}

	if closure["atk"] != Integer(5) {
		t.Errorf("closure[atk] = %v, want 5", closure["atk"])
	}

	// Mutating the returned map must not affect the environment.
	closure["atk"] = Integer(99)

	val, _, err := env.Get(ctx, rctx, "atk")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	if val != Integer(5) {
		t.Errorf("env mutated through closure snapshot: got %v, want 5", val)
	}
}

func TestMemoryEnvironment_Print(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	rctx := NewContext("guild-1", "alice")

	if got, err := env.Print(ctx, rctx); err != nil || got != "{}" {
		t.Fatalf("Print() on empty scope = %q, err %v, want {}", got, err)
	}

	if err := env.Set(ctx, rctx, "b", Integer(2)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if err := env.Set(ctx, rctx, "a", Integer(1)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := env.Print(ctx, rctx)
	if err != nil {
		t.Fatalf("Print error: %v", err)
	}

	want := "{a: 1, b: 2}"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
