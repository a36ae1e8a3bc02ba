package lang

import (
	"context"
	"math/rand/v2"
	"testing"
)

// constRand feeds a fixed sequence of raw uint64 values to rand.Rand's
// underlying source, giving handleRoll's Uint64 draws a fully deterministic
// (and easy to hand-verify) result.
type constRand struct {
	values []uint64
	pos    int
}

func (c *constRand) Uint64() uint64 {
	v := c.values[c.pos%len(c.values)]
	c.pos++

	return v
}

func newDeterministicRand(values ...uint64) *rand.Rand {
	return rand.New(&constRand{values: values})
}

func TestEvaluate_TermLeftAssociativity(t *testing.T) {
	// 10 - 3 - 2 must fold as (10 - 3) - 2 = 5, never 10 - (3 - 2) = 9.
	expr := Term{
		Left:  Term{Left: Integer(10), Right: Integer(3), Op: Subtract},
		Right: Integer(2),
		Op:    Subtract,
	}

	got, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), expr)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(5) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestEvaluate_TermOperandOrderIsNotCommuted(t *testing.T) {
	// 100 - 1 must be 99, not -99: left really is left.
	expr := Term{Left: Integer(100), Right: Integer(1), Op: Subtract}

	got, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), expr)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(99) {
		t.Errorf("got %v, want 99", got)
	}
}

func TestEvaluate_DiceRollDefaultCount(t *testing.T) {
	// d1 always rolls exactly one 1-sided die: the only possible value is 1.
	expr := DiceRoll{Count: Integer(1), Sides: Integer(1)}

	got, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), expr)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestEvaluate_DiceRollIsDeterministicGivenRng(t *testing.T) {
	// A source that always returns 0 makes every draw 0 % 6 = 0, so 3d6
	// sums to 3*(0+1) = 3 regardless of call count.
	expr := DiceRoll{Count: Integer(3), Sides: Integer(6)}

	got, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), expr)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestEvaluate_VariableLookup(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	rctx := NewContext("s", "u")

	if err := env.Set(ctx, rctx, "atk", Integer(42)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := EvaluateExpression(ctx, env, rctx, newDeterministicRand(0), Variable{Name: "atk"})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(42) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestEvaluate_VariableLookupMissing(t *testing.T) {
	_, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), Variable{Name: "nope"})
	if err == nil {
		t.Fatal("expected error for unbound variable")
	}

	if !IsEval(err) {
		t.Errorf("expected EvalError, got %v (%T)", err, err)
	}
}

func TestEvaluate_TemplateCapturesEnclosingScope(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	rctx := NewContext("s", "u")

	if err := env.Set(ctx, rctx, "bonus", Integer(5)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// A zero-arg template referencing {bonus} must see it via Closure.
	tmpl := DiceRollTemplate{Args: nil, Expressions: []Expression{Variable{Name: "bonus"}}}
	call := DiceRollTemplateCall{Target: tmpl, Args: nil}

	got, err := EvaluateExpression(ctx, env, rctx, newDeterministicRand(0), call)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(5) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestEvaluate_TemplateArgumentBindingOrder(t *testing.T) {
	env := NewMemoryEnvironment()
	ctx := context.Background()
	rctx := NewContext("s", "u")

	// (a, b) => ({a} - {b}) called with (10, 3) must bind a=10, b=3, not
	// swapped, so the result is 7, not -7.
	tmpl := DiceRollTemplate{
		Args: []string{"a", "b"},
		Expressions: []Expression{
			Term{Left: Variable{Name: "a"}, Right: Variable{Name: "b"}, Op: Subtract},
		},
	}
	call := DiceRollTemplateCall{Target: tmpl, Args: []Expression{Integer(10), Integer(3)}}

	got, err := EvaluateExpression(ctx, env, rctx, newDeterministicRand(0), call)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(7) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestEvaluate_TemplateMultiStatementBodyKeepsLastValue(t *testing.T) {
	tmpl := DiceRollTemplate{
		Args: nil,
		Expressions: []Expression{
			Integer(1),
			Integer(2),
			Integer(3),
		},
	}
	call := DiceRollTemplateCall{Target: tmpl, Args: nil}

	got, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), call)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Integer(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestEvaluate_CallTargetNotATemplate(t *testing.T) {
	call := DiceRollTemplateCall{Target: Integer(1), Args: nil}

	_, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), call)
	if err == nil || !IsEval(err) {
		t.Errorf("expected EvalError, got %v", err)
	}
}

func TestEvaluate_DiceRollRejectsNonPositiveSides(t *testing.T) {
	expr := DiceRoll{Count: Integer(1), Sides: Integer(0)}

	_, err := EvaluateExpression(context.Background(), NewMemoryEnvironment(),
		NewContext("s", "u"), newDeterministicRand(0), expr)
	if err == nil || !IsEval(err) {
		t.Errorf("expected EvalError for sides=0, got %v", err)
	}
}
