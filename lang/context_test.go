package lang

import "testing"

func TestContextKeys(t *testing.T) {
	ctx := NewContext("guild-1", "user-1")

	wantUser := "scope:guild-1#scope_type:user#user:user-1"
	if got := ctx.UserContextKey(); got != wantUser {
		t.Errorf("UserContextKey() = %q, want %q", got, wantUser)
	}

	wantGlobal := "scope:guild-1#scope_type:global"
	if got := ctx.GlobalContextKey(); got != wantGlobal {
		t.Errorf("GlobalContextKey() = %q, want %q", got, wantGlobal)
	}
}

func TestContextKeys_Isolation(t *testing.T) {
	alice := NewContext("guild-1", "alice")
	bob := NewContext("guild-1", "bob")

	if alice.UserContextKey() == bob.UserContextKey() {
		t.Errorf("expected distinct user keys, both got %q", alice.UserContextKey())
	}

	if alice.GlobalContextKey() != bob.GlobalContextKey() {
		t.Errorf("expected shared global key within a scope, got %q and %q",
			alice.GlobalContextKey(), bob.GlobalContextKey())
	}
}
