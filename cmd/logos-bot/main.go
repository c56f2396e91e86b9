package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/logoscenter/logos-bot/internal/handlers"
	"github.com/logoscenter/logos-bot/internal/platforms"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Telegram struct{} `cmd:"" default:"1" help:"Run the Telegram bot"`
	Discord  struct{} `cmd:"" help:"Run the Discord bot"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, relying on the environment")
	}

	service := handlers.Telegram
	if kctx.Command() == "discord" {
		service = handlers.Discord
	}

	platforms.EnsureBotCanStart(service)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	platforms.StartSupportServices(ctx)

	switch service {
	case handlers.Telegram:
		platforms.RunTelegramBot(ctx)
	case handlers.Discord:
		platforms.RunDiscordBot(ctx)
	}

	slog.Info("Bot stopped")
}
