package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ardnew/rollenv/chat"
	"github.com/ardnew/rollenv/lang"
)

// Serve runs the Discord bot front-end until interrupted.
type Serve struct {
	Token string `env:"DISCORD_TOKEN" help:"Discord bot token" required:""`

	EnvFlags `embed:""`
}

// Run implements kong's command interface.
func (s *Serve) Run(ctx context.Context) error {
	if s.Token == "" {
		return ErrMissingToken
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := s.EnvFlags.Build(ctx)
	if err != nil {
		return err
	}

	repl := lang.NewREPL(env)

	bot, err := chat.NewBot(s.Token, repl)
	if err != nil {
		return err
	}

	if err := bot.Open(); err != nil {
		return err
	}
	defer bot.Close()

	<-ctx.Done()

	return nil
}
