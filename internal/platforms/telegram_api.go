package platforms

import (
	"context"
	"log/slog"
	"time"

	"github.com/logoscenter/logos-bot/internal/chain"
	"github.com/logoscenter/logos-bot/internal/config"
	"github.com/logoscenter/logos-bot/internal/handlers"

	tele "gopkg.in/telebot.v4"
)

func wrapTeleHandler(bot *tele.Bot, chain *chain.HandlerChain) func(c tele.Context) error {
	return func(c tele.Context) error {
		chain.Process(&handlers.Context{TelebotContext: c, Telebot: bot, Service: handlers.Telegram})
		return nil
	}
}

func TelebotCompatibleVisibleCommands() []tele.Command {
	commands := make([]tele.Command, 0, len(handlers.VisibleActions))
	for _, action := range handlers.VisibleActions {
		commands = append(commands, tele.Command{
			Text:        string(action),
			Description: string(handlers.ActionMap[action]),
		})
	}
	return commands
}

// RunTelegramBot polls until ctx is cancelled.
func RunTelegramBot(ctx context.Context) {
	bot := getTelegramBot()
	chain := chain.NewChainOfResponsibility()

	if err := bot.SetCommands(TelebotCompatibleVisibleCommands()); err != nil {
		slog.Warn("Could not publish command menu", "error", err)
	}

	bot.Handle(tele.OnText, wrapTeleHandler(bot, chain))
	bot.Handle(tele.OnVoice, wrapTeleHandler(bot, chain))
	bot.Handle(tele.OnPhoto, wrapTeleHandler(bot, chain))

	go func() {
		<-ctx.Done()
		bot.Stop()
	}()

	slog.Info("Telegram bot is up")
	bot.Start()
}

func getTelegramBot() *tele.Bot {
	pref := tele.Settings{
		// Markdown is opted into per message, so no global parse mode.
		Token: config.FromEnv().TELEGRAM_BOT_TOKEN,
		Poller: &tele.LongPoller{
			Timeout: 10 * time.Second,
			AllowedUpdates: []string{
				"message",
			},
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		panic(err)
	}

	return b
}
