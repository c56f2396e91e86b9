package handlers

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
	tele "gopkg.in/telebot.v4"

	"github.com/logoscenter/logos-bot/pkg/utils"
)

type ImageResponseHandler struct {
	next ContextHandler
}

func (r *ImageResponseHandler) Execute(m *Context) {
	slog.Debug("Entering ImageResponseHandler")

	if len(m.finalImagePath) > 0 {
		switch m.Service {
		case Telegram:
			chatId := tele.ChatID(utils.S2I(m.chatId))
			photo := &tele.Photo{File: tele.FromDisk(m.finalImagePath)}
			if _, err := m.Telebot.Send(chatId, photo); err != nil {
				slog.Error("Failed to send image", "error", err)
			}
		case Discord:
			r.sendDiscordImage(m)
		}

		if err := os.Remove(m.finalImagePath); err != nil {
			slog.Error("Failed to remove image", "error", err)
		}
	}

	r.next.Execute(m)
}

func (r *ImageResponseHandler) sendDiscordImage(m *Context) {
	file, err := os.Open(m.finalImagePath)
	if err != nil {
		slog.Error("Failed to open image", "error", err)
		return
	}
	defer file.Close()

	message := &discordgo.MessageSend{
		Files: []*discordgo.File{
			{
				Name:        filepath.Base(m.finalImagePath),
				ContentType: "image/png",
				Reader:      file,
			},
		},
	}

	if _, err := m.DiscordSession.ChannelMessageSendComplex(m.chatId, message); err != nil {
		slog.Error("Failed to send image", "error", err)
	}
}

func (u *ImageResponseHandler) SetNext(next ContextHandler) {
	u.next = next
}
