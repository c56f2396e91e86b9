package repository

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, maxHistory int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), maxHistory)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.Append("telegram", "42", "user", "Ученика зовут Миша"))
	require.NoError(t, store.Append("telegram", "42", "assistant", "Записал. Какой месяц отчёта?"))

	history, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Equal(t, []Message{
		{Role: "user", Content: "Ученика зовут Миша"},
		{Role: "assistant", Content: "Записал. Какой месяц отчёта?"},
	}, history)
}

func TestHistoryKeepsOnlyWindow(t *testing.T) {
	store := openTestStore(t, 4)

	for i := 1; i <= 9; i++ {
		require.NoError(t, store.Append("telegram", "42", "user", fmt.Sprintf("сообщение %d", i)))
	}

	history, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Len(t, history, 4)
	require.Equal(t, "сообщение 6", history[0].Content)
	require.Equal(t, "сообщение 9", history[3].Content)
}

func TestHistoryIsolatedPerChatAndService(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.Append("telegram", "42", "user", "раз"))
	require.NoError(t, store.Append("telegram", "43", "user", "два"))
	require.NoError(t, store.Append("discord", "42", "user", "три"))

	history, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "раз", history[0].Content)
}

func TestHistoryCacheStaysCurrentAfterAppend(t *testing.T) {
	store := openTestStore(t, 3)

	require.NoError(t, store.Append("telegram", "42", "user", "первое"))

	// Prime the cache, then keep appending past the window size.
	_, err := store.History("telegram", "42")
	require.NoError(t, err)

	require.NoError(t, store.Append("telegram", "42", "assistant", "второе"))
	require.NoError(t, store.Append("telegram", "42", "user", "третье"))
	require.NoError(t, store.Append("telegram", "42", "assistant", "четвертое"))

	history, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Equal(t, []Message{
		{Role: "assistant", Content: "второе"},
		{Role: "user", Content: "третье"},
		{Role: "assistant", Content: "четвертое"},
	}, history)
}

func TestHistoryResultIsACopy(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.Append("telegram", "42", "user", "оригинал"))

	first, err := store.History("telegram", "42")
	require.NoError(t, err)
	first[0].Content = "подмена"

	second, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Equal(t, "оригинал", second[0].Content)
}

func TestClear(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.Append("telegram", "42", "user", "что-то"))
	require.NoError(t, store.Clear("telegram", "42"))

	history, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestPruneOlderThan(t *testing.T) {
	store := openTestStore(t, 10)

	require.NoError(t, store.Append("telegram", "42", "user", "старое"))
	require.NoError(t, store.Append("telegram", "42", "user", "свежее"))

	_, err := store.db.Exec(
		`UPDATE messages SET created_at = datetime('now', '-40 days') WHERE content = 'старое'`)
	require.NoError(t, err)

	pruned, err := store.PruneOlderThan(30)
	require.NoError(t, err)
	require.EqualValues(t, 1, pruned)

	history, err := store.History("telegram", "42")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "свежее", history[0].Content)
}
