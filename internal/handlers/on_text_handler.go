package handlers

import (
	"log/slog"
	"strconv"
	"strings"
)

type OnTextHandler struct {
	next ContextHandler
}

func (mp *OnTextHandler) Execute(m *Context) {
	slog.Debug("Entering OnTextHandler")
	switch m.Service {
	case Telegram:
		c := m.TelebotContext
		message := c.Message()
		if message != nil {
			m.rawText = strings.Replace(message.Text, "@"+m.Telebot.Me.Username, "", 1)
			m.id = strconv.Itoa(message.ID)
			m.chatId = strconv.FormatInt(c.Chat().ID, 10)

			if message.IsReply() {
				m.replyToId = strconv.Itoa(message.ReplyTo.ID)
				m.shouldReplyToMessage = true
			}
			if message.Voice != nil {
				m.hasVoice = true
			}
			if message.Photo != nil {
				m.hasPhoto = true
				m.photoCaption = message.Caption
			}
		}
	case Discord:
		message := m.DiscordMessage
		if message != nil {
			m.rawText = message.Content
			m.id = message.ID
			if message.ReferencedMessage != nil {
				m.replyToId = message.ReferencedMessage.ID
				m.shouldReplyToMessage = true
			}
			m.chatId = message.ChannelID

			for _, attachment := range message.Attachments {
				switch {
				case strings.HasPrefix(attachment.ContentType, "audio/"):
					m.hasVoice = true
					m.voiceURL = attachment.URL
				case strings.HasPrefix(attachment.ContentType, "image/"):
					m.hasPhoto = true
					m.photoCaption = message.Content
				}
			}
		}
	}
	mp.next.Execute(m)
}

func (mp *OnTextHandler) SetNext(next ContextHandler) {
	mp.next = next
}
