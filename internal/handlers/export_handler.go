package handlers

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/logoscenter/logos-bot/internal/config"
	"github.com/logoscenter/logos-bot/internal/export"
	"github.com/logoscenter/logos-bot/internal/metrics"
	"github.com/logoscenter/logos-bot/internal/repository"
	"github.com/logoscenter/logos-bot/pkg/utils"
)

const (
	emptyHistoryText = "❌ История пуста! Нечего экспортировать."

	noFinalReportText = "❌ Финальный отчёт еще не создан!\n\n" +
		"Пожалуйста, заполните все 8 пунктов отчёта в диалоге с ботом, " +
		"затем попробуйте экспорт снова."

	exportFailedText = "❌ Произошла ошибка при создании Excel файла. Попробуйте позже."
)

type ExportHandler struct {
	next ContextHandler
}

func (e *ExportHandler) Execute(m *Context) {
	slog.Debug("Entering ExportHandler")
	if m.action == Export {
		e.export(m)
	}

	e.next.Execute(m)
}

func (e *ExportHandler) export(m *Context) {
	store, err := repository.Shared()
	if err != nil {
		slog.Error("Failed to open history store", "error", err)
		m.textResponse = exportFailedText
		return
	}

	history, err := store.History(m.Service.String(), m.chatId)
	if err != nil {
		slog.Error("Failed to read history", "error", err)
		m.textResponse = exportFailedText
		return
	}
	if len(history) == 0 {
		m.textResponse = emptyHistoryText
		return
	}

	report := export.FinalReport(history)
	if report == "" {
		m.textResponse = noFinalReportText
		return
	}

	m.sendAck("⏳ Формирую отчёт в Excel, подождите...")

	now := time.Now()
	studentName := export.StudentName(history)
	points := export.ParsePoints(report)
	slog.Info("Exporting report", "points", len(points), "student", studentName)

	cfg := config.FromEnv()
	utils.EnsureTmpDirExists(cfg.TMP_DIR)
	path := filepath.Join(cfg.TMP_DIR, export.Filename(studentName, m.chatId, now))

	if err := export.BuildWorkbook(points, studentName, path, now); err != nil {
		slog.Error("Failed to build workbook", "error", err)
		m.textResponse = exportFailedText
		return
	}

	caption := "📊 Отчёт преподавателя"
	if studentName != "" {
		caption += " - " + strings.ToUpper(studentName)
	}
	caption += "\n📅 " + now.Format("02.01.2006 15:04")

	m.documentPath = path
	m.documentCaption = caption
	metrics.Default().ExportCreated()
}

func (e *ExportHandler) SetNext(next ContextHandler) {
	e.next = next
}
