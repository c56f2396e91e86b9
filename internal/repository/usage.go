package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RecordUsage notes that an action was handled for a chat. The events
// feed the usage statistics chart.
func (s *Store) RecordUsage(service, chatID, action string) error {
	_, err := s.db.Exec(`
		INSERT INTO usage_events (service, chat_id, action)
		VALUES (?, ?, ?)`,
		service, chatID, action)
	if err != nil {
		return fmt.Errorf("failed to record usage event: %w", err)
	}
	return nil
}

// DumpUsageCSV writes the usage events of the last `days` days into a
// fresh CSV file under dir, one row per event: date, service, action.
// Returns the file path.
func (s *Store) DumpUsageCSV(dir string, days int) (string, error) {
	rows, err := s.db.Query(`
		SELECT date(created_at), service, action FROM usage_events
		WHERE created_at >= datetime('now', ?)
		ORDER BY created_at`,
		fmt.Sprintf("-%d days", days))
	if err != nil {
		return "", fmt.Errorf("failed to query usage events: %w", err)
	}
	defer rows.Close()

	path := filepath.Join(dir, fmt.Sprintf("usage-%s.csv", uuid.New().String()))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	for rows.Next() {
		var day, service, action string
		if err := rows.Scan(&day, &service, &action); err != nil {
			return "", fmt.Errorf("failed to scan usage event: %w", err)
		}
		if err := w.Write([]string{day, service, action}); err != nil {
			return "", err
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}

// PruneUsageOlderThan removes usage events older than the given number of days.
func (s *Store) PruneUsageOlderThan(days int) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM usage_events WHERE created_at < datetime('now', ?)`,
		fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, fmt.Errorf("failed to prune usage events: %w", err)
	}
	return res.RowsAffected()
}

// UsageEventCount reports how many events are stored for the last `days` days.
func (s *Store) UsageEventCount(days int) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM usage_events
		WHERE created_at >= datetime('now', ?)`,
		fmt.Sprintf("-%d days", days)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count usage events: %w", err)
	}
	return n, nil
}
