package handlers

import (
	"log/slog"

	"github.com/logoscenter/logos-bot/internal/repository"
)

type PhotoNoteHandler struct {
	next ContextHandler
}

func (p *PhotoNoteHandler) Execute(m *Context) {
	slog.Debug("Entering PhotoNoteHandler")
	if m.action == PhotoNote {
		note := "[Пользователь отправил фото экзаменационной работы/материала]"
		if m.photoCaption != "" {
			note += "\nПодпись к фото: " + m.photoCaption
		}

		store, err := repository.Shared()
		if err != nil {
			slog.Error("Failed to open history store", "error", err)
		} else if err := store.Append(m.Service.String(), m.chatId, "user", note); err != nil {
			slog.Error("Failed to store photo note", "error", err)
		}

		m.textResponse = "📷 Фото получено! Можете добавить текстовый или голосовой комментарий."
	}

	p.next.Execute(m)
}

func (p *PhotoNoteHandler) SetNext(next ContextHandler) {
	p.next = next
}
