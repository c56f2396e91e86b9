package platforms

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/logoscenter/logos-bot/internal/chain"
	"github.com/logoscenter/logos-bot/internal/config"
	"github.com/logoscenter/logos-bot/internal/handlers"
)

func wrapDiscoHandler(chain *chain.HandlerChain) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by the bot itself
		if m.Author.ID == s.State.User.ID {
			return
		}

		chain.Process(&handlers.Context{
			DiscordSession: s,
			DiscordMessage: m,
			Service:        handlers.Discord,
		})
	}
}

// RunDiscordBot keeps the gateway connection open until ctx is cancelled.
func RunDiscordBot(ctx context.Context) {
	token := config.FromEnv().DISCORD_BOT_TOKEN
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		slog.Error("Error creating Discord session", "error", err)
		return
	}

	dg.AddHandler(wrapDiscoHandler(chain.NewChainOfResponsibility()))

	// MessageContent is privileged but required to read report text.
	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	if err := dg.Open(); err != nil {
		slog.Error("Error opening Discord connection", "error", err)
		return
	}
	defer dg.Close()

	slog.Info("Discord bot is up")
	<-ctx.Done()
}
