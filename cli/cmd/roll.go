package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/rollenv/lang"
)

// Roll evaluates a single expression or statement and prints its result.
type Roll struct {
	Expression []string `arg:"" help:"Statement to evaluate (e.g. '!roll 2d6 + 3')" optional:""`
	User       string   `default:"cli"  help:"User identity for variable scoping"`
	Scope      string   `default:"repl" help:"Scope identity for variable scoping"`

	EnvFlags `embed:""`
}

// Run implements kong's command interface.
func (r *Roll) Run(ctx context.Context) error {
	line := joinArgs(r.Expression)
	if line == "" {
		return ErrMissingExpression
	}

	env, err := r.EnvFlags.Build(ctx)
	if err != nil {
		return err
	}

	repl := lang.NewREPL(env)
	rctx := lang.NewContext(r.Scope, r.User)

	out, err := repl.Exec(ctx, rctx, line)
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}

func joinArgs(args []string) string {
	out := ""

	for i, a := range args {
		if i > 0 {
			out += " "
		}

		out += a
	}

	return out
}
