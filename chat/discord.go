// Package chat implements a Discord front-end over lang.REPL, one REPL
// instance shared by the whole process and one Context scope per channel.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ardnew/rollenv/lang"
	"github.com/ardnew/rollenv/log"
)

// Bot binds a lang.REPL to a Discord gateway session. Each incoming
// message is parsed and evaluated against the channel's scope, and the
// response is sent back to the same channel. A message that fails to parse
// and does not start with "!" gets no reply.
type Bot struct {
	session *discordgo.Session
	repl    *lang.REPL
}

// NewBot creates a Bot authenticated with token. The caller must call Open
// to connect and Close to disconnect.
func NewBot(token string, repl *lang.REPL) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, lang.WrapError(err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{session: session, repl: repl}

	session.AddHandler(bot.ready)
	session.AddHandler(bot.messageCreate)

	return bot, nil
}

// Open connects the bot to the Discord gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return lang.WrapError(err)
	}

	return nil
}

// Close disconnects the bot from the Discord gateway.
func (b *Bot) Close() error {
	if err := b.session.Close(); err != nil {
		return lang.WrapError(err)
	}

	return nil
}

func (b *Bot) ready(_ *discordgo.Session, r *discordgo.Ready) {
	log.Info("discord bot connected", slog.String("user", r.User.Username))
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	content := strings.TrimSpace(m.Content)
	if content == "" {
		return
	}

	rctx := lang.NewContext(m.ChannelID, m.Author.ID)

	out, err := b.repl.Exec(context.Background(), rctx, content)
	if err != nil {
		// A parse error on an ordinary chat message is not a bot failure;
		// only messages that look like a command are worth a reply.
		if lang.IsParser(err) && !strings.HasPrefix(content, "!") {
			return
		}

		out = fmt.Sprintf("error: %s", err.Error())
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, out); err != nil {
		log.Error("send discord message", slog.String("error", err.Error()))
	}
}
