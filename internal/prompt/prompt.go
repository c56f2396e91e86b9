// Package prompt holds the system prompt driving the report dialogue.
// The prompt lives in a markdown file next to the binary and can be
// edited without a restart, a watcher reloads it on change.
package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/logoscenter/logos-bot/internal/config"
)

const reloadDebounce = 300 * time.Millisecond

type Loader struct {
	path string

	mu   sync.RWMutex
	text string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the prompt file. An unreadable or empty file is an error,
// the bot cannot run a report dialogue without its instructions.
func (l *Loader) Load() error {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read prompt file %s: %w", l.path, err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return fmt.Errorf("prompt file %s is empty", l.path)
	}

	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
	return nil
}

// Text returns the most recently loaded prompt, empty if never loaded.
func (l *Loader) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// Watch reloads the prompt when its file changes. Watching the parent
// directory survives editors that replace the file on save.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create prompt watcher: %w", err)
	}

	absPath, err := filepath.Abs(l.path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to resolve prompt path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch prompt directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		promptFile := filepath.Base(absPath)
		var reloadTimer *time.Timer

		for {
			select {
			case <-ctx.Done():
				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != promptFile {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(reloadDebounce, func() {
					if err := l.Load(); err != nil {
						slog.Error("Failed to reload prompt", "error", err)
						return
					}
					slog.Info("Prompt reloaded", "path", l.path)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Prompt watcher error", "error", err)
			}
		}
	}()

	return nil
}

var (
	defaultLoader *Loader
	defaultOnce   sync.Once
)

func shared() *Loader {
	defaultOnce.Do(func() {
		defaultLoader = NewLoader(config.FromEnv().PROMPT_FILE)
	})
	return defaultLoader
}

// Load reads the prompt on the shared loader.
func Load() error {
	return shared().Load()
}

// Text returns the shared loader's current prompt.
func Text() string {
	return shared().Text()
}

// Watch starts change tracking on the shared loader.
func Watch(ctx context.Context) error {
	return shared().Watch(ctx)
}
