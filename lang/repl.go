package lang

import (
	"context"
	"math/rand/v2"
	"sync"
)

// REPL binds one parser, one PRNG stream, and one [Environment] together
// into a single exec loop. Context (scope/user) is passed per call rather
// than stored, and Exec calls are serialized, so a single REPL can serve
// many callers concurrently against the same environment.
type REPL struct {
	mu     sync.Mutex
	rng    *rand.Rand
	env    Environment
	locale string
}

// NewREPL constructs a REPL over env, seeded from a new entropy source.
// Callers that need reproducible sequences should build rng themselves and
// use [NewREPLWithRand] instead.
func NewREPL(env Environment) *REPL {
	return NewREPLWithRand(env, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewREPLWithRand constructs a REPL with an explicit PRNG, for deterministic
// tests.
func NewREPLWithRand(env Environment, rng *rand.Rand) *REPL {
	return &REPL{rng: rng, env: env, locale: DefaultLocale}
}

// SetLocale changes the locale used by a subsequent !help.
func (r *REPL) SetLocale(locale string) { r.locale = locale }

// Exec parses and evaluates one line of input against rctx, returning the
// line of output a terminal or chat front-end should print. A parse
// failure always becomes the single opaque ParserError("failed to
// parse"); evaluator errors propagate unchanged.
func (r *REPL) Exec(ctx context.Context, rctx Context, input string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stmt, err := ParseStatementCached(input)
	if err != nil {
		return "", NewParserError("failed to parse")
	}

	switch s := stmt.(type) {
	case Roll:
		value, err := EvaluateExpression(ctx, r.env, rctx, r.rng, s.Expr)
		if err != nil {
			return "", err
		}

		if _, ok := value.(Integer); !ok {
			return "", NewEvalError("roll did not produce an integer")
		}

		return FormatResult(value), nil

	case SetValue:
		value, err := EvaluateExpression(ctx, r.env, rctx, r.rng, s.Expr)
		if err != nil {
			return "", err
		}

		if err := r.env.Set(ctx, rctx, s.Name, value); err != nil {
			return "", WrapError(err)
		}

		return FormatSet(s.Name, value), nil

	case PrintEnv:
		dump, err := r.env.Print(ctx, rctx)
		if err != nil {
			return "", WrapError(err)
		}

		return dump, nil

	case Help:
		return HelpText(r.locale), nil

	default:
		return "", NewEvalError("unhandled statement type")
	}
}
