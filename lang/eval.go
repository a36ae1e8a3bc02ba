package lang

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// call is one entry of the evaluator's explicit call stack: a node in
// focus and whether its children have already been scheduled.
type call struct {
	waiting bool
	expr    Expression
}

// evaluator holds an explicit call stack and return-value stack so that
// deeply nested expressions evaluate without recursing the Go call stack.
// It is constructed fresh for each top-level Expression evaluation
// (including recursively, once per template-body expression).
type evaluator struct {
	ctx   context.Context
	env   Environment
	rctx  Context
	rng   *rand.Rand
	calls []call
	rets  []Expression
}

// EvaluateExpression runs the iterative driver loop against root, returning
// its fully-reduced value (always Integer or DiceRollTemplate).
//
// Operand-order note: children are pushed onto the call stack in plain
// source order. Because
// the call stack is LIFO, the *last*-pushed child is evaluated first, but
// it is the *first*-pushed child that is pushed onto the return stack
// *last* — landing on top. So popping the return stack in the order the
// reduction code names its operands ("left" first, "right" second, ...)
// already yields each child's value in source order, with no separate
// reversal step. This is exercised directly by
// TestEvaluate_TermLeftAssociativity and
// TestEvaluate_TemplateArgumentBindingOrder.
func EvaluateExpression(
	ctx context.Context,
	env Environment,
	rctx Context,
	rng *rand.Rand,
	root Expression,
) (Expression, error) {
	e := &evaluator{
		ctx:   ctx,
		env:   env,
		rctx:  rctx,
		rng:   rng,
		calls: []call{{waiting: false, expr: root}},
	}

	return e.run()
}

func (e *evaluator) pushReturn(v Expression) { e.rets = append(e.rets, v) }

func (e *evaluator) popReturn() (Expression, error) {
	if len(e.rets) == 0 {
		return nil, NewEvalError("evaluation did not produce a result")
	}

	v := e.rets[len(e.rets)-1]
	e.rets = e.rets[:len(e.rets)-1]

	return v, nil
}

func (e *evaluator) pushCall(expr Expression) {
	e.calls = append(e.calls, call{waiting: false, expr: expr})
}

func (e *evaluator) run() (Expression, error) {
	for len(e.calls) > 0 {
		top := &e.calls[len(e.calls)-1]

		if !top.waiting {
			children, composite := childrenOf(top.expr)
			if composite {
				top.waiting = true

				for _, child := range children {
					e.pushCall(child)
				}

				continue
			}
		}

		e.calls = e.calls[:len(e.calls)-1]

		if err := e.reduce(top.expr); err != nil {
			return nil, err
		}
	}

	result, err := e.popReturn()
	if err != nil {
		return nil, err
	}

	if len(e.rets) != 0 {
		return nil, NewEvalError("evaluation did not produce a result")
	}

	return result, nil
}

// childrenOf returns a composite node's sub-expressions in source order,
// or (nil, false) for a node that reduces directly.
func childrenOf(expr Expression) ([]Expression, bool) {
	switch e := expr.(type) {
	case Term:
		return []Expression{e.Left, e.Right}, true
	case DiceRoll:
		return []Expression{e.Count, e.Sides}, true
	case DiceRollTemplateCall:
		return append([]Expression{e.Target}, e.Args...), true
	default:
		return nil, false
	}
}

func (e *evaluator) reduce(expr Expression) error {
	switch v := expr.(type) {
	case Integer:
		e.pushReturn(v)

		return nil

	case Variable:
		return e.reduceVariable(v)

	case Term:
		return e.reduceTerm(v)

	case DiceRoll:
		return e.reduceDiceRoll()

	case DiceRollTemplate:
		e.pushReturn(v)

		return nil

	case DiceRollTemplateCall:
		return e.reduceTemplateCall(v)

	default:
		return NewEvalError(fmt.Sprintf("unhandled expression %T", expr))
	}
}

func (e *evaluator) reduceVariable(v Variable) error {
	val, ok, err := e.env.Get(e.ctx, e.rctx, v.Name)
	if err != nil {
		return WrapError(err)
	}

	if !ok {
		return NewEvalError("failed to lookup variable " + v.Name)
	}

	e.pushReturn(val)

	return nil
}

func (e *evaluator) reduceTerm(t Term) error {
	left, err := e.popReturn()
	if err != nil {
		return err
	}

	right, err := e.popReturn()
	if err != nil {
		return err
	}

	li, ok := left.(Integer)
	if !ok {
		return NewEvalError("left operand of term is not an integer")
	}

	ri, ok := right.(Integer)
	if !ok {
		return NewEvalError("right operand of term is not an integer")
	}

	e.pushReturn(Integer(handleOp(int64(li), int64(ri), t.Op)))

	return nil
}

func handleOp(left, right int64, op Op) int64 {
	switch op {
	case Subtract:
		return left - right
	default:
		return left + right
	}
}

func (e *evaluator) reduceDiceRoll() error {
	count, err := e.popReturn()
	if err != nil {
		return err
	}

	sides, err := e.popReturn()
	if err != nil {
		return err
	}

	ci, ok := count.(Integer)
	if !ok {
		return NewEvalError("dice roll count is not an integer")
	}

	si, ok := sides.(Integer)
	if !ok {
		return NewEvalError("dice roll sides is not an integer")
	}

	if ci < 0 {
		return NewEvalError("dice roll count must be non-negative")
	}

	if si < 1 {
		return NewEvalError("dice roll sides must be at least 1")
	}

	e.pushReturn(Integer(handleRoll(e.rng, int64(ci), int64(si))))

	return nil
}

// handleRoll sums count independent samples in [1, sides]. Each sample is
// one raw 64-bit draw reduced modulo sides, with no rejection step, so a
// source that always returns 0 rolls 1 on every die.
func handleRoll(rng *rand.Rand, count, sides int64) int64 {
	var sum int64

	for range count {
		sum += int64(rng.Uint64()%uint64(sides)) + 1
	}

	return sum
}

func (e *evaluator) reduceTemplateCall(call DiceRollTemplateCall) error {
	targetVal, err := e.popReturn()
	if err != nil {
		return err
	}

	tmpl, ok := targetVal.(DiceRollTemplate)
	if !ok {
		return NewEvalError("call target is not a template")
	}

	if len(tmpl.Expressions) == 0 {
		return NewEvalError("missing body for dice roll template")
	}

	closure, err := e.env.Closure(e.ctx, e.rctx)
	if err != nil {
		return WrapError(err)
	}

	fresh := NewMemoryEnvironment()
	for name, val := range closure {
		if err := fresh.Set(e.ctx, e.rctx, name, val); err != nil {
			return WrapError(err)
		}
	}

	for _, param := range tmpl.Args {
		argVal, err := e.popReturn()
		if err != nil {
			return err
		}

		if err := fresh.Set(e.ctx, e.rctx, param, argVal); err != nil {
			return WrapError(err)
		}
	}

	var last Expression

	for _, bodyExpr := range tmpl.Expressions {
		last, err = EvaluateExpression(e.ctx, fresh, e.rctx, e.rng, bodyExpr)
		if err != nil {
			return err
		}
	}

	e.pushReturn(last)

	return nil
}
