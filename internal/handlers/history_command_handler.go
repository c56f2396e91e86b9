package handlers

import (
	"log/slog"

	"github.com/logoscenter/logos-bot/internal/repository"
)

type HistoryCommandHandler struct {
	next ContextHandler
}

func (h *HistoryCommandHandler) Execute(m *Context) {
	slog.Debug("Entering HistoryCommandHandler")

	switch m.action {
	case Start, NextStudent, Clear:
		store, err := repository.Shared()
		if err != nil {
			slog.Error("Failed to open history store", "error", err)
			break
		}
		if err := store.Clear(m.Service.String(), m.chatId); err != nil {
			slog.Error("Failed to clear history", "error", err)
		}
	case History:
		store, err := repository.Shared()
		if err != nil {
			slog.Error("Failed to open history store", "error", err)
			break
		}
		history, err := store.History(m.Service.String(), m.chatId)
		if err != nil {
			slog.Error("Failed to read history", "error", err)
			break
		}
		for _, msg := range history {
			switch msg.Role {
			case "user":
				m.userMessages++
			case "assistant":
				m.assistantMessages++
			}
		}
		m.historySize = len(history)
	}

	h.next.Execute(m)
}

func (h *HistoryCommandHandler) SetNext(next ContextHandler) {
	h.next = next
}
