package repository

import (
	"fmt"
)

func historyKey(service, chatID string) string {
	return service + "/" + chatID
}

// Append stores one conversation turn and keeps the cached window current.
func (s *Store) Append(service, chatID, role, content string) error {
	_, err := s.db.Exec(`
		INSERT INTO messages (service, chat_id, role, content)
		VALUES (?, ?, ?, ?)`,
		service, chatID, role, content)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	key := historyKey(service, chatID)
	if window, ok := s.cache.Get(key); ok {
		window = append(window, Message{Role: role, Content: content})
		if len(window) > s.maxHistory {
			window = window[len(window)-s.maxHistory:]
		}
		s.cache.Add(key, window)
	}

	return nil
}

// History returns the last maxHistory messages of a chat, oldest first.
func (s *Store) History(service, chatID string) ([]Message, error) {
	key := historyKey(service, chatID)
	if window, ok := s.cache.Get(key); ok {
		out := make([]Message, len(window))
		copy(out, window)
		return out, nil
	}

	rows, err := s.db.Query(`
		SELECT role, content FROM messages
		WHERE service = ? AND chat_id = ?
		ORDER BY id DESC LIMIT ?`,
		service, chatID, s.maxHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var window []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		window = append(window, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query walks newest to oldest, the window is oldest first.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}

	s.cache.Add(key, window)

	out := make([]Message, len(window))
	copy(out, window)
	return out, nil
}

// Clear drops a chat's history, both the rows and the cached window.
func (s *Store) Clear(service, chatID string) error {
	_, err := s.db.Exec(`DELETE FROM messages WHERE service = ? AND chat_id = ?`, service, chatID)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	s.cache.Remove(historyKey(service, chatID))
	return nil
}

// PruneOlderThan removes messages older than the given number of days
// and invalidates the whole cache.
func (s *Store) PruneOlderThan(days int) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM messages WHERE created_at < datetime('now', ?)`,
		fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, fmt.Errorf("failed to prune messages: %w", err)
	}
	s.cache.Purge()
	return res.RowsAffected()
}
