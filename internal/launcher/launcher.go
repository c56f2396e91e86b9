package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/logoscenter/logos-bot/pkg/utils"
)

const (
	envFile      = ".env"
	promptFile   = "prompt.md"
	delegateName = "logos-bot"
)

// Launcher checks that a working directory is ready for the bot and
// then hands control to the bot binary. It talks to the operator over
// plain stdout, not the log.
type Launcher struct {
	Dir    string
	Stdout io.Writer
	// Spawn runs the delegate in dir and returns its exit code.
	Spawn func(dir string) (int, error)
}

func New() *Launcher {
	return &Launcher{
		Dir:    ".",
		Stdout: os.Stdout,
		Spawn:  spawnDelegate,
	}
}

// Run performs the startup checks in order and returns the process
// exit code: 1 when a check or the spawn fails, otherwise the
// delegate's own exit code.
func (l *Launcher) Run() int {
	fmt.Fprintln(l.Stdout, "🚀 Запуск ИИ-ассистента преподавателей «Логос»...")

	if !utils.FileExists(filepath.Join(l.Dir, envFile)) {
		fmt.Fprintln(l.Stdout, "⚠️  Файл .env не найден!")
		fmt.Fprintln(l.Stdout, "💡 Скопируйте .env.example в .env и добавьте токены (TELEGRAM_BOT_TOKEN, OPENROUTER_API_KEY).")
		return 1
	}

	if !utils.FileExists(filepath.Join(l.Dir, promptFile)) {
		fmt.Fprintln(l.Stdout, "⚠️  Файл prompt.md не найден!")
		fmt.Fprintln(l.Stdout, "💡 Создайте файл prompt.md с системным промптом для отчётов.")
		return 1
	}

	fmt.Fprintln(l.Stdout, "✅ Проверки пройдены, запускаю бота...")

	code, err := l.Spawn(l.Dir)
	if err != nil {
		fmt.Fprintf(l.Stdout, "❌ Не удалось запустить бота: %v\n", err)
		return 1
	}
	return code
}

// resolveDelegate prefers the logos-bot binary sitting next to the
// launcher executable and falls back to $PATH.
func resolveDelegate() (string, error) {
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), delegateName)
		if utils.FileExists(sibling) {
			return sibling, nil
		}
	}
	path, err := exec.LookPath(delegateName)
	if err != nil {
		return "", fmt.Errorf("%s binary not found: %w", delegateName, err)
	}
	return path, nil
}

func spawnDelegate(dir string) (int, error) {
	bin, err := resolveDelegate()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(bin)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}
