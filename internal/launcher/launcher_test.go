package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type spawnRecorder struct {
	calls int
	dir   string
	code  int
	err   error
}

func (r *spawnRecorder) spawn(dir string) (int, error) {
	r.calls++
	r.dir = dir
	return r.code, r.err
}

func newTestLauncher(t *testing.T, rec *spawnRecorder) (*Launcher, *strings.Builder) {
	t.Helper()
	out := &strings.Builder{}
	l := New()
	l.Dir = t.TempDir()
	l.Stdout = out
	l.Spawn = rec.spawn
	return l, out
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestRunFailsWithoutEnvFile(t *testing.T) {
	rec := &spawnRecorder{}
	l, out := newTestLauncher(t, rec)

	require.Equal(t, 1, l.Run())
	require.Contains(t, out.String(), "Файл .env не найден")
	require.NotContains(t, out.String(), "prompt.md")
	require.Zero(t, rec.calls)
}

func TestRunFailsWithoutPromptFile(t *testing.T) {
	rec := &spawnRecorder{}
	l, out := newTestLauncher(t, rec)
	touch(t, l.Dir, ".env")

	require.Equal(t, 1, l.Run())
	require.Contains(t, out.String(), "Файл prompt.md не найден")
	require.Zero(t, rec.calls)
}

func TestRunSpawnsDelegateOnce(t *testing.T) {
	rec := &spawnRecorder{}
	l, out := newTestLauncher(t, rec)
	touch(t, l.Dir, ".env")
	touch(t, l.Dir, "prompt.md")

	require.Equal(t, 0, l.Run())
	require.Equal(t, 1, rec.calls)
	require.Equal(t, l.Dir, rec.dir)
	require.Contains(t, out.String(), "✅ Проверки пройдены")
}

func TestRunPrintsBannerFirst(t *testing.T) {
	rec := &spawnRecorder{}
	l, out := newTestLauncher(t, rec)

	l.Run()

	lines := strings.Split(out.String(), "\n")
	require.Equal(t, "🚀 Запуск ИИ-ассистента преподавателей «Логос»...", lines[0])
}

func TestRunPropagatesDelegateExitCode(t *testing.T) {
	rec := &spawnRecorder{code: 42}
	l, _ := newTestLauncher(t, rec)
	touch(t, l.Dir, ".env")
	touch(t, l.Dir, "prompt.md")

	require.Equal(t, 42, l.Run())
}

func TestRunReportsSpawnFailure(t *testing.T) {
	rec := &spawnRecorder{err: errors.New("fork failed")}
	l, out := newTestLauncher(t, rec)
	touch(t, l.Dir, ".env")
	touch(t, l.Dir, "prompt.md")

	require.Equal(t, 1, l.Run())
	require.Contains(t, out.String(), "Не удалось запустить бота")
}

func TestRunIsIdempotentWithoutFilesystemChanges(t *testing.T) {
	rec := &spawnRecorder{}
	l, out := newTestLauncher(t, rec)
	touch(t, l.Dir, ".env")

	require.Equal(t, 1, l.Run())
	first := out.String()
	out.Reset()
	require.Equal(t, 1, l.Run())
	require.Equal(t, first, out.String())
	require.Zero(t, rec.calls)
}
