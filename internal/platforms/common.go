package platforms

import (
	"context"
	"log/slog"
	"os"

	"github.com/logoscenter/logos-bot/internal/config"
	"github.com/logoscenter/logos-bot/internal/handlers"
	"github.com/logoscenter/logos-bot/internal/maintenance"
	"github.com/logoscenter/logos-bot/internal/metrics"
	"github.com/logoscenter/logos-bot/internal/prompt"
	"github.com/logoscenter/logos-bot/internal/repository"
	"github.com/logoscenter/logos-bot/internal/transcribe"
	"github.com/logoscenter/logos-bot/pkg/utils"
)

// EnsureBotCanStart exits the process when the configuration cannot
// support the requested platform. Voice transcription is optional and
// only logged.
func EnsureBotCanStart(service handlers.Service) {
	cfg := config.FromEnv()

	switch service {
	case handlers.Telegram:
		if cfg.TELEGRAM_BOT_TOKEN == "" {
			slog.Error("TELEGRAM_BOT_TOKEN is not set")
			os.Exit(1)
		}
	case handlers.Discord:
		if cfg.DISCORD_BOT_TOKEN == "" {
			slog.Error("DISCORD_BOT_TOKEN is not set")
			os.Exit(1)
		}
	}

	if cfg.OPENROUTER_API_KEY == "" {
		slog.Error("OPENROUTER_API_KEY is not set")
		os.Exit(1)
	}

	if err := prompt.Load(); err != nil {
		slog.Error("Cannot load system prompt", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ System prompt loaded", "file", cfg.PROMPT_FILE)

	if transcribe.NewClient(cfg).Available() {
		slog.Info("✅ Groq API key found, voice messages enabled")
		if transcribe.FFmpegAvailable() {
			slog.Info("✅ ffmpeg found, audio conversion available")
		} else {
			slog.Warn("⚠️ ffmpeg is not installed, voice messages will not work")
		}
	} else {
		slog.Warn("⚠️ GROQ_API_KEY is not set, voice messages disabled")
	}

	utils.EnsureTmpDirExists(cfg.TMP_DIR)
	slog.Info("Starting bot", "service", service.String(), "model", cfg.OPENROUTER_MODEL)
}

// StartSupportServices launches the pieces that live next to the bot
// for its whole lifetime: the prompt file watcher, the metrics
// endpoint and the daily maintenance jobs. All of them wind down when
// ctx is cancelled.
func StartSupportServices(ctx context.Context) {
	cfg := config.FromEnv()

	if err := prompt.Watch(ctx); err != nil {
		slog.Warn("Prompt file watcher not running", "error", err)
	}

	metrics.Serve(ctx, cfg.METRICS_PORT)

	scheduler, err := maintenance.NewScheduler()
	if err != nil {
		slog.Warn("Maintenance scheduler not running", "error", err)
		return
	}
	if err := scheduler.ScheduleDailyCleanup(cfg.TMP_DIR); err != nil {
		slog.Warn("Could not schedule tmp cleanup", "error", err)
	}
	store, err := repository.Shared()
	if err != nil {
		slog.Warn("Could not schedule history prune", "error", err)
	} else if err := scheduler.ScheduleHistoryPrune(store, cfg.HistoryRetentionDays()); err != nil {
		slog.Warn("Could not schedule history prune", "error", err)
	}
	scheduler.Start()

	go func() {
		<-ctx.Done()
		if err := scheduler.Stop(); err != nil {
			slog.Error("Stopping maintenance scheduler", "error", err)
		}
	}()
}
