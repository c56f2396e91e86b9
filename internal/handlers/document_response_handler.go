package handlers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
	tele "gopkg.in/telebot.v4"

	"github.com/logoscenter/logos-bot/internal/archive"
	"github.com/logoscenter/logos-bot/internal/config"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DocumentResponseHandler struct {
	next ContextHandler
}

func (d *DocumentResponseHandler) Execute(m *Context) {
	slog.Debug("Entering DocumentResponseHandler")

	if m.documentPath != "" {
		switch m.Service {
		case Telegram:
			document := &tele.Document{
				File:     tele.FromDisk(m.documentPath),
				FileName: filepath.Base(m.documentPath),
				Caption:  m.documentCaption,
			}
			if err := m.TelebotContext.Send(document, mainKeyboard()); err != nil {
				slog.Error("Failed to send document", "error", err)
			}
		case Discord:
			d.sendDiscordFile(m)
		}

		d.archiveReport(m.documentPath)

		if err := os.Remove(m.documentPath); err != nil {
			slog.Error("Failed to remove workbook", "error", err)
		}
	}

	d.next.Execute(m)
}

func (d *DocumentResponseHandler) sendDiscordFile(m *Context) {
	file, err := os.Open(m.documentPath)
	if err != nil {
		slog.Error("Failed to open workbook", "error", err)
		return
	}
	defer file.Close()

	message := &discordgo.MessageSend{
		Content: m.documentCaption,
		Files: []*discordgo.File{
			{
				Name:        filepath.Base(m.documentPath),
				ContentType: workbookContentType,
				Reader:      file,
			},
		},
	}

	if _, err := m.DiscordSession.ChannelMessageSendComplex(m.chatId, message); err != nil {
		slog.Error("Failed to send document", "error", err)
	}
}

// archiveReport keeps a copy in S3 when archiving is configured.
func (d *DocumentResponseHandler) archiveReport(path string) {
	cfg := config.FromEnv()
	if !archive.Enabled(cfg) {
		return
	}

	client, err := archive.New(cfg)
	if err != nil {
		slog.Error("Failed to create archive client", "error", err)
		return
	}
	if err := client.UploadReport(context.Background(), path); err != nil {
		slog.Error("Failed to archive report", "error", err)
		return
	}
	slog.Info("Report archived", "file", filepath.Base(path))
}

func (d *DocumentResponseHandler) SetNext(next ContextHandler) {
	d.next = next
}
