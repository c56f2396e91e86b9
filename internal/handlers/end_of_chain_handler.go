package handlers

import (
	"log/slog"

	"github.com/logoscenter/logos-bot/internal/metrics"
	"github.com/logoscenter/logos-bot/internal/repository"
)

type EndOfChainHandler struct{}

func (h *EndOfChainHandler) Execute(m *Context) {
	slog.Debug("Entering EndOfChainHandler")
	if m.doneTyping != nil {
		slog.Debug("Closing doneTyping channel")
		close(m.doneTyping)
	}

	if m.action != "" {
		metrics.Default().MessageHandled(m.Service.String(), string(m.action))

		store, err := repository.Shared()
		if err != nil {
			slog.Error("Failed to open history store", "error", err)
			return
		}
		if err := store.RecordUsage(m.Service.String(), m.chatId, string(m.action)); err != nil {
			slog.Error("Failed to record usage", "error", err)
		}
	}
}

func (h *EndOfChainHandler) SetNext(handler ContextHandler) {
	panic("cannot set next handler on ChainEnd")
}
