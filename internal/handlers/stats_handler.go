package handlers

import (
	"fmt"
	"log/slog"

	"github.com/logoscenter/logos-bot/internal/config"
	"github.com/logoscenter/logos-bot/internal/repository"
	"github.com/logoscenter/logos-bot/internal/stats"
	"github.com/logoscenter/logos-bot/pkg/utils"
)

const usageChartDays = 30

const statsFailedText = "❌ Не удалось построить график использования. Попробуйте позже."

type StatsHandler struct {
	next ContextHandler
}

func (s *StatsHandler) Execute(m *Context) {
	slog.Debug("Entering StatsHandler")
	if m.action == Stats {
		s.buildChart(m)
	}

	s.next.Execute(m)
}

func (s *StatsHandler) buildChart(m *Context) {
	store, err := repository.Shared()
	if err != nil {
		slog.Error("Failed to open history store", "error", err)
		m.textResponse = statsFailedText
		return
	}

	count, err := store.UsageEventCount(usageChartDays)
	if err != nil {
		slog.Error("Failed to count usage events", "error", err)
		m.textResponse = statsFailedText
		return
	}
	if count == 0 {
		m.textResponse = fmt.Sprintf("📭 Пока нет данных за последние %d дней.", usageChartDays)
		return
	}

	cfg := config.FromEnv()
	utils.EnsureTmpDirExists(cfg.TMP_DIR)

	chartPath, err := stats.BuildUsageChart(store, cfg.TMP_DIR, usageChartDays)
	if err != nil {
		slog.Error("Failed to build usage chart", "error", err)
		m.textResponse = statsFailedText
		return
	}

	m.finalImagePath = chartPath
}

func (s *StatsHandler) SetNext(next ContextHandler) {
	s.next = next
}
