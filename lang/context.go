package lang

import "fmt"

// Context is an immutable, cheaply copyable value identifying the scope and
// user an expression is evaluated against. Scope is the chat channel id for
// the bot front-end and the literal "repl" for the terminal front-end.
type Context struct {
	Scope string
	User  string
}

// NewContext returns a Context for the given scope and user.
func NewContext(scope, user string) Context {
	return Context{Scope: scope, User: user}
}

// UserContextKey is the opaque partition key for this user's variables
// within Scope.
func (c Context) UserContextKey() string {
	return fmt.Sprintf("scope:%s#scope_type:user#user:%s", c.Scope, c.User)
}

// GlobalContextKey is the opaque partition key reserved for a scope-wide
// global namespace. No evaluator operation writes to it today; it exists
// so storage backends can reserve the key space.
func (c Context) GlobalContextKey() string {
	return fmt.Sprintf("scope:%s#scope_type:global", c.Scope)
}
