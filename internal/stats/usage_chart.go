// Package stats renders a usage chart for the /stats command. Usage
// events are dumped to CSV, aggregated per day with DuckDB and drawn
// into a PNG through a headless chrome snapshot.
package stats

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/snapshot-chromedp/render"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"golang.org/x/exp/maps"

	"github.com/logoscenter/logos-bot/internal/repository"
)

const (
	chatSeries   = "Диалоги"
	exportSeries = "Экспорты"
	otherSeries  = "Прочее"
)

// UsageEntry is one day of aggregated usage counts.
type UsageEntry struct {
	Date    time.Time
	Chats   float64
	Exports float64
	Other   float64
}

// CountsFromCSV aggregates the dumped usage events per day.
func CountsFromCSV(dirPath string) ([]UsageEntry, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("could not open DuckDB: %w", err)
	}
	defer conn.Close()

	query := `
		SELECT
			date,
			CAST(SUM(CASE WHEN action = 'chat' THEN 1 ELSE 0 END) AS DOUBLE) AS chats,
			CAST(SUM(CASE WHEN action = 'export' THEN 1 ELSE 0 END) AS DOUBLE) AS exports,
			CAST(SUM(CASE WHEN action NOT IN ('chat', 'export') THEN 1 ELSE 0 END) AS DOUBLE) AS other
		FROM read_csv_auto("` + strings.TrimSuffix(dirPath, "/") + `/*",
			HEADER=false,
			COLUMNS={'date': 'DATE', 'service': 'VARCHAR', 'action': 'VARCHAR'}
		)
		GROUP BY date
		ORDER BY date;
	`

	rows, err := conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("could not query DuckDB: %w", err)
	}
	defer rows.Close()

	var entries []UsageEntry
	for rows.Next() {
		var entry UsageEntry
		if err := rows.Scan(&entry.Date, &entry.Chats, &entry.Exports, &entry.Other); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// chartSeries flattens entries into sorted dates and per-series values.
func chartSeries(entries []UsageEntry) ([]string, map[string][]opts.LineData) {
	dateMap := make(map[string]map[string]float64)
	for _, entry := range entries {
		dateStr := entry.Date.Format("2006-01-02")
		dateMap[dateStr] = map[string]float64{
			chatSeries:   entry.Chats,
			exportSeries: entry.Exports,
			otherSeries:  entry.Other,
		}
	}

	dates := maps.Keys(dateMap)
	sort.Strings(dates)

	series := make(map[string][]opts.LineData)
	for _, name := range []string{chatSeries, exportSeries, otherSeries} {
		var values []opts.LineData
		for _, date := range dates {
			values = append(values, opts.LineData{Value: dateMap[date][name]})
		}
		series[name] = values
	}

	return dates, series
}

// GenerateUsageLine draws the per-day usage counts into a PNG.
func GenerateUsageLine(entries []UsageEntry, days int, outputPath string) error {
	line := charts.NewLine()

	dates, series := chartSeries(entries)

	var maxCount float64
	for _, entry := range entries {
		for _, val := range []float64{entry.Chats, entry.Exports, entry.Other} {
			if val > maxCount {
				maxCount = val
			}
		}
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#FFFFFF",
		}),
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Использование бота - последние %d дней", days)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Дата"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Событий", Max: fmt.Sprintf("%.0f", maxCount+1), Min: "0"}),
	)

	line.SetXAxis(dates)
	for _, name := range []string{chatSeries, exportSeries, otherSeries} {
		line.AddSeries(name, series[name])
	}

	err := render.MakeChartSnapshot(line.RenderContent(), outputPath)
	if err != nil {
		return fmt.Errorf("failed to render the usage chart: %w", err)
	}
	return nil
}

// BuildUsageChart dumps recent usage events, aggregates them and
// renders the chart. Returns the PNG path, the caller removes it after
// sending.
func BuildUsageChart(store *repository.Store, tmpDir string, days int) (string, error) {
	csvDir := filepath.Join(tmpDir, "usage-"+uuid.New().String())
	if err := os.MkdirAll(csvDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create csv directory: %w", err)
	}
	defer os.RemoveAll(csvDir)

	if _, err := store.DumpUsageCSV(csvDir, days); err != nil {
		return "", err
	}

	entries, err := CountsFromCSV(csvDir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no usage events in the last %d days", days)
	}

	outputPath := filepath.Join(tmpDir, "usage-"+uuid.New().String()+".png")
	if err := GenerateUsageLine(entries, days, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
