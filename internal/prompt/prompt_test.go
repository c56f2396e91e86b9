package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadTrimsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("\n\nТы ассистент преподавателя.\n"), 0o644))

	loader := NewLoader(path)
	require.NoError(t, loader.Load())
	require.Equal(t, "Ты ассистент преподавателя.", loader.Text())
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "prompt.md"))
	require.Error(t, loader.Load())
	require.Empty(t, loader.Text())
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("   \n\t\n"), 0o644))

	loader := NewLoader(path)
	require.Error(t, loader.Load())
}

func TestLoadKeepsPreviousTextOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("первая версия"), 0o644))

	loader := NewLoader(path)
	require.NoError(t, loader.Load())
	require.NoError(t, os.Remove(path))

	require.Error(t, loader.Load())
	require.Equal(t, "первая версия", loader.Text())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("первая версия"), 0o644))

	loader := NewLoader(path)
	require.NoError(t, loader.Load())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, loader.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("вторая версия"), 0o644))
	require.Eventually(t, func() bool {
		return loader.Text() == "вторая версия"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("первая версия"), 0o644))

	loader := NewLoader(path)
	require.NoError(t, loader.Load())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, loader.Watch(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("другое"), 0o644))
	time.Sleep(2 * reloadDebounce)
	require.Equal(t, "первая версия", loader.Text())
}
