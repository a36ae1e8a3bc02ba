package cmd

import (
	"context"
	"os"

	"github.com/ardnew/rollenv/cli/cmd/repl"
	"github.com/ardnew/rollenv/lang"
	"github.com/ardnew/rollenv/log"
)

// Repl starts an interactive terminal session.
type Repl struct {
	User  string `default:"cli"  help:"User identity for variable scoping"`
	Scope string `default:"repl" help:"Scope identity for variable scoping"`

	EnvFlags `embed:""`
}

// Run implements kong's command interface.
func (r *Repl) Run(ctx context.Context) error {
	logger := log.Make(os.Stderr)

	env, err := r.EnvFlags.Build(ctx)
	if err != nil {
		return err
	}

	l := lang.NewREPL(env)
	rctx := lang.NewContext(r.Scope, r.User)

	return repl.Run(ctx, l, rctx, cacheDirFrom(ctx), logger)
}

// cacheDirFrom resolves the runtime cache directory kong resolved from
// CacheIdentifier, or the empty string if unavailable.
func cacheDirFrom(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	v, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		return ""
	}

	return v
}
