package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

const (
	NextStudentButton = "➡️ Следующий ученик"
	ExportButton      = "📊 Экспорт в Excel"
)

// mainKeyboard is the persistent reply keyboard under the input field.
func mainKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{ResizeKeyboard: true}
	kb.Reply(kb.Row(kb.Text(NextStudentButton), kb.Text(ExportButton)))
	return kb
}

func (m Context) SendTyping() {
	var err error

	switch m.Service {
	case Telegram:
		action := tele.Typing
		if m.action == Export {
			action = tele.UploadingDocument
		}
		err = m.TelebotContext.Notify(action)
	case Discord:
		err = m.DiscordSession.ChannelTyping(m.chatId)
	}

	if err != nil {
		slog.Error(err.Error())
	}
}

// sendAck pushes an immediate status message while the chain keeps
// working on the final response.
func (m Context) sendAck(text string) {
	var err error

	switch m.Service {
	case Telegram:
		err = m.TelebotContext.Send(text)
	case Discord:
		_, err = m.DiscordSession.ChannelMessageSend(m.chatId, text)
	}

	if err != nil {
		slog.Error(err.Error())
	}
}
