package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/logoscenter/logos-bot/internal/config"
	"github.com/logoscenter/logos-bot/internal/metrics"
	"github.com/logoscenter/logos-bot/internal/transcribe"
	"github.com/logoscenter/logos-bot/pkg/utils"
)

const voiceSetupText = "🎤 Голосовые сообщения не настроены.\n\n" +
	"📝 Для использования голосовых сообщений необходимо:\n" +
	"1. Получить БЕСПЛАТНЫЙ Groq API ключ: https://console.groq.com/keys\n" +
	"2. Добавить его в .env файл: GROQ_API_KEY=ваш_ключ\n\n" +
	"💬 А пока отправьте ваш вопрос текстом!"

const transcriptionFailedText = "❌ Не удалось распознать речь. " +
	"Попробуйте еще раз или отправьте текстовое сообщение."

type TranscriptionHandler struct {
	next ContextHandler
}

func (t *TranscriptionHandler) Execute(m *Context) {
	slog.Debug("Entering TranscriptionHandler")
	if m.hasVoice && m.action == Chat {
		if !transcribe.Enabled() {
			m.textResponse = voiceSetupText
		} else {
			m.sendAck("🎤 Обрабатываю голосовое сообщение...")

			text, err := t.transcribeVoice(m)
			if err != nil {
				slog.Error("Voice transcription failed", "error", err)
				metrics.Default().Transcription(false)
				m.textResponse = transcriptionFailedText
			} else {
				slog.Info("Voice message transcribed", "length", len(text))
				metrics.Default().Transcription(true)
				m.parsedText = text
			}
		}
	}

	t.next.Execute(m)
}

func (t *TranscriptionHandler) transcribeVoice(m *Context) (string, error) {
	ogaPath, err := t.downloadVoice(m)
	if err != nil {
		return "", err
	}

	text, err := transcribe.TranscribeOGA(context.Background(), ogaPath)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("empty transcription")
	}
	return text, nil
}

func (t *TranscriptionHandler) downloadVoice(m *Context) (string, error) {
	cfg := config.FromEnv()
	utils.EnsureTmpDirExists(cfg.TMP_DIR)
	ogaPath := filepath.Join(cfg.TMP_DIR, "voice_"+uuid.New().String()+".oga")

	switch m.Service {
	case Telegram:
		voice := m.TelebotContext.Message().Voice
		reader, err := m.Telebot.File(&voice.File)
		if err != nil {
			return "", fmt.Errorf("fetching voice file: %w", err)
		}
		defer reader.Close()

		file, err := os.Create(ogaPath)
		if err != nil {
			return "", err
		}
		defer file.Close()

		if _, err := io.Copy(file, reader); err != nil {
			return "", fmt.Errorf("saving voice file: %w", err)
		}
	case Discord:
		resp, err := resty.New().R().SetOutput(ogaPath).Get(m.voiceURL)
		if err != nil {
			return "", fmt.Errorf("fetching voice attachment: %w", err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("fetching voice attachment: %s", resp.Status())
		}
	}

	return ogaPath, nil
}

func (t *TranscriptionHandler) SetNext(next ContextHandler) {
	t.next = next
}
