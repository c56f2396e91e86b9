package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	tele "gopkg.in/telebot.v4"

	"github.com/logoscenter/logos-bot/pkg/utils"
)

// Telegram caps messages at 4096 characters, Discord at 2000. Longer
// responses are split into parts with a little headroom left for the
// part prefix.
const (
	telegramSingleLimit = 4096
	telegramPartLimit   = 4000
	discordSingleLimit  = 2000
	discordPartLimit    = 1900

	betweenPartsDelay = 500 * time.Millisecond
)

type TextResponseHandler struct {
	next ContextHandler
}

func (r *TextResponseHandler) Execute(m *Context) {
	slog.Debug("Entering TextResponseHandler")

	if m.textResponse != "" {
		r.send(m, m.textResponse, m.shouldReplyToMessage)
	}
	if m.extraTextResponse != "" {
		r.send(m, m.extraTextResponse, false)
	}

	r.next.Execute(m)
}

func (r *TextResponseHandler) send(m *Context, text string, asReply bool) {
	singleLimit, partLimit := telegramSingleLimit, telegramPartLimit
	if m.Service == Discord {
		singleLimit, partLimit = discordSingleLimit, discordPartLimit
	}

	parts := []string{text}
	if len(text) > singleLimit {
		parts = utils.SplitMessage(text, partLimit)
	}

	for i, part := range parts {
		if len(parts) > 1 {
			part = fmt.Sprintf("📄 Часть %d/%d:\n\n", i+1, len(parts)) + part
		}

		switch m.Service {
		case Telegram:
			opts := []interface{}{mainKeyboard()}
			if m.markdownResponse {
				opts = append(opts, tele.ModeMarkdown)
			}

			if asReply && i == 0 {
				message := &tele.Message{
					Chat: &tele.Chat{ID: int64(utils.S2I(m.chatId))},
					ID:   utils.S2I(m.replyToId),
				}
				if _, err := m.Telebot.Reply(message, part, opts...); err != nil {
					slog.Error(err.Error())
				}
			} else {
				if err := m.TelebotContext.Send(part, opts...); err != nil {
					slog.Error(err.Error())
				}
			}

		case Discord:
			if asReply && i == 0 {
				reference := &discordgo.MessageReference{
					ChannelID: m.chatId,
					MessageID: m.id,
				}
				if _, err := m.DiscordSession.ChannelMessageSendReply(m.chatId, part, reference); err != nil {
					slog.Error(err.Error())
				}
			} else {
				if _, err := m.DiscordSession.ChannelMessageSend(m.chatId, part); err != nil {
					slog.Error(err.Error())
				}
			}
		}

		if len(parts) > 1 {
			time.Sleep(betweenPartsDelay)
		}
	}
}

func (u *TextResponseHandler) SetNext(next ContextHandler) {
	u.next = next
}
