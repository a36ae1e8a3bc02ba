package lang

import (
	"context"
	"math/rand/v2"
	"testing"
)

func TestREPL_RollAndSet(t *testing.T) {
	repl := NewREPLWithRand(NewMemoryEnvironment(), rand.New(&constRand{values: []uint64{0}}))
	ctx := context.Background()
	rctx := NewContext("guild-1", "alice")

	out, err := repl.Exec(ctx, rctx, "!set atk 1d20 + 5")
	if err != nil {
		t.Fatalf("exec error: %v", err)
	}

	wantSet := `"atk" => Integer(6)`
	if out != wantSet {
		t.Errorf("!set output = %q, want %q", out, wantSet)
	}

	out, err = repl.Exec(ctx, rctx, "!roll {atk}")
	if err != nil {
		t.Fatalf("exec error: %v", err)
	}

	if out != "6" {
		t.Errorf("!roll output = %q, want %q", out, "6")
	}
}

func TestREPL_ContextIsolation(t *testing.T) {
	env := NewMemoryEnvironment()
	repl := NewREPLWithRand(env, rand.New(&constRand{values: []uint64{0}}))
	ctx := context.Background()

	alice := NewContext("guild-1", "alice")
	bob := NewContext("guild-1", "bob")

	if _, err := repl.Exec(ctx, alice, "!set atk 99"); err != nil {
		t.Fatalf("exec error: %v", err)
	}

	if _, err := repl.Exec(ctx, bob, "!roll {atk}"); err == nil {
		t.Error("expected bob's lookup of alice's binding to fail")
	}
}

func TestREPL_ParseFailureIsOpaque(t *testing.T) {
	repl := NewREPL(NewMemoryEnvironment())

	_, err := repl.Exec(context.Background(), NewContext("s", "u"), "!roll 1 +")
	if err == nil {
		t.Fatal("expected parse error")
	}

	if err.Error() != "ParserError(failed to parse)" {
		t.Errorf("err = %q, want %q", err.Error(), "ParserError(failed to parse)")
	}
}

func TestREPL_PrintEnvAndHelp(t *testing.T) {
	repl := NewREPL(NewMemoryEnvironment())
	ctx := context.Background()
	rctx := NewContext("s", "u")

	if out, err := repl.Exec(ctx, rctx, "!print-env"); err != nil || out != "{}" {
		t.Errorf("!print-env = %q, err %v, want {}", out, err)
	}

	out, err := repl.Exec(ctx, rctx, "!help")
	if err != nil {
		t.Fatalf("exec error: %v", err)
	}

	if out != HelpText(DefaultLocale) {
		t.Errorf("!help output did not match HelpText(%q)", DefaultLocale)
	}
}
