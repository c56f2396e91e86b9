package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/logoscenter/logos-bot/internal/llm"
	"github.com/logoscenter/logos-bot/internal/metrics"
	"github.com/logoscenter/logos-bot/internal/prompt"
	"github.com/logoscenter/logos-bot/internal/repository"
)

const notConfiguredText = "❌ Извините, бот не настроен правильно. " +
	"Системный промпт не загружен. Обратитесь к администратору."

const llmFailedText = "❌ Произошла ошибка при обработке запроса. Попробуйте позже."

type LLMResponseHandler struct {
	next ContextHandler
}

func (l *LLMResponseHandler) Execute(m *Context) {
	slog.Debug("Entering LLMResponseHandler")
	if m.action == Chat && m.parsedText != "" {
		m.textResponse = l.respond(m)
	}

	l.next.Execute(m)
}

func (l *LLMResponseHandler) respond(m *Context) string {
	systemPrompt := prompt.Text()
	if systemPrompt == "" {
		slog.Error("System prompt is not loaded")
		return notConfiguredText
	}

	store, err := repository.Shared()
	if err != nil {
		slog.Error("Failed to open history store", "error", err)
		return llmFailedText
	}

	service := m.Service.String()
	if err := store.Append(service, m.chatId, "user", m.parsedText); err != nil {
		slog.Error("Failed to store user message", "error", err)
	}

	history, err := store.History(service, m.chatId)
	if err != nil {
		slog.Error("Failed to read history", "error", err)
		return llmFailedText
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	start := time.Now()
	answer, err := llm.Complete(context.Background(), messages)
	metrics.Default().ObserveLLMDuration(time.Since(start))
	if err != nil {
		slog.Error("LLM completion failed", "error", err)
		metrics.Default().LLMError()
		return llmFailedText
	}

	slog.Info("Got LLM response", "length", len(answer))
	if err := store.Append(service, m.chatId, "assistant", answer); err != nil {
		slog.Error("Failed to store assistant message", "error", err)
	}

	return answer
}

func (l *LLMResponseHandler) SetNext(next ContextHandler) {
	l.next = next
}
