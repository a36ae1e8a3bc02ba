package lang

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
)

// MemoryEnvironment is the in-memory Environment implementation: a
// two-level mapping context_key → (var_name → Expression), guarded by a
// mutex. It never actually suspends, but implements the same
// context.Context-aware interface as the persistent backend for
// uniformity.
type MemoryEnvironment struct {
	mu   sync.RWMutex
	vars map[string]map[string]Expression
}

// NewMemoryEnvironment returns an empty in-memory environment.
func NewMemoryEnvironment() *MemoryEnvironment {
	return &MemoryEnvironment{vars: make(map[string]map[string]Expression)}
}

// Get implements Environment.
func (e *MemoryEnvironment) Get(
	_ context.Context,
	rctx Context,
	name string,
) (Expression, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scope, ok := e.vars[rctx.UserContextKey()]
	if !ok {
		return nil, false, nil
	}

	val, ok := scope[name]

	return val, ok, nil
}

// Set implements Environment.
func (e *MemoryEnvironment) Set(
	_ context.Context,
	rctx Context,
	name string,
	value Expression,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := rctx.UserContextKey()

	scope, ok := e.vars[key]
	if !ok {
		scope = make(map[string]Expression)
		e.vars[key] = scope
	}

	scope[name] = value

	return nil
}

// Closure implements Environment. It returns a shallow clone of the inner
// map (Expression values are immutable, so a shallow clone is a deep clone
// in effect) or an empty map if the scope has no entries.
func (e *MemoryEnvironment) Closure(
	_ context.Context,
	rctx Context,
) (map[string]Expression, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scope, ok := e.vars[rctx.UserContextKey()]
	if !ok {
		return map[string]Expression{}, nil
	}

	return maps.Clone(scope), nil
}

// Print implements Environment, rendering a sorted debug dump of the
// scope's bindings.
func (e *MemoryEnvironment) Print(_ context.Context, rctx Context) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scope := e.vars[rctx.UserContextKey()]
	if len(scope) == 0 {
		return "{}", nil
	}

	names := make([]string, 0, len(scope))
	for name := range scope {
		names = append(names, name)
	}

	sort.Strings(names)

	var b strings.Builder

	b.WriteString("{")

	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s: %v", name, scope[name])
	}

	b.WriteString("}")

	return b.String(), nil
}
