package repository

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordUsageAndDump(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.RecordUsage("telegram", "42", "chat"))
	require.NoError(t, store.RecordUsage("telegram", "42", "export"))
	require.NoError(t, store.RecordUsage("discord", "99", "chat"))

	dir := t.TempDir()
	path, err := store.DumpUsageCSV(dir, 30)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "telegram", rows[0][1])
	require.Equal(t, "chat", rows[0][2])
	require.Equal(t, "export", rows[1][2])
	require.Equal(t, "discord", rows[2][1])
}

func TestDumpUsageCSVSkipsOldEvents(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.RecordUsage("telegram", "42", "chat"))
	require.NoError(t, store.RecordUsage("telegram", "42", "stats"))
	_, err := store.db.Exec(
		`UPDATE usage_events SET created_at = datetime('now', '-60 days') WHERE action = 'stats'`)
	require.NoError(t, err)

	path, err := store.DumpUsageCSV(t.TempDir(), 30)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "chat", rows[0][2])
}

func TestPruneUsageOlderThan(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.RecordUsage("telegram", "42", "chat"))
	require.NoError(t, store.RecordUsage("telegram", "42", "chat"))
	_, err := store.db.Exec(`UPDATE usage_events SET created_at = datetime('now', '-100 days')
		WHERE id = (SELECT MIN(id) FROM usage_events)`)
	require.NoError(t, err)

	pruned, err := store.PruneUsageOlderThan(90)
	require.NoError(t, err)
	require.EqualValues(t, 1, pruned)

	n, err := store.UsageEventCount(365)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUsageEventCount(t *testing.T) {
	store := openTestStore(t, 10)

	n, err := store.UsageEventCount(30)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, store.RecordUsage("telegram", "42", "chat"))
	n, err = store.UsageEventCount(30)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
