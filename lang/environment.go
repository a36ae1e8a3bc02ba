package lang

import "context"

// Environment is the logical mapping (context_key, variable_name) →
// Expression that backs variable and template storage. Implementations may
// suspend (persistent backends perform I/O); every method therefore takes a
// context.Context for cancellation.
//
// Invariants implementations must uphold:
//  1. Set followed by Get with the same Context and name returns the stored
//     expression, within a single evaluator invocation.
//  2. Closure returns an internally-consistent snapshot of every binding
//     visible at ctx.UserContextKey(); it need not reflect concurrent
//     mutations made after the snapshot starts.
//  3. Stored expressions round-trip through MarshalExpression/
//     UnmarshalExpression bit-exactly.
type Environment interface {
	// Get returns the expression bound to name under ctx, or ok == false if
	// no such binding exists. A missing binding is not an error.
	Get(ctx context.Context, rctx Context, name string) (value Expression, ok bool, err error)

	// Set binds name to value under ctx, replacing any existing binding.
	Set(ctx context.Context, rctx Context, name string, value Expression) error

	// Closure returns a snapshot of every (name → Expression) binding
	// currently visible at rctx.UserContextKey().
	Closure(ctx context.Context, rctx Context) (map[string]Expression, error)

	// Print renders a textual representation of rctx's bindings, for the
	// !print-env statement. The format is implementation-defined; callers
	// must not depend on anything beyond non-emptiness.
	Print(ctx context.Context, rctx Context) (string, error)
}
