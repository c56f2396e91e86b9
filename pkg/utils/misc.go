package utils

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Unsafe conversion. Mainly used for mapping chat ids back and forth
// as discord and telebot are using strings and integres respectively.
func S2I(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func EnsureTmpDirExists(tmpDir string) {
	err := os.MkdirAll(tmpDir, 0755)
	if err != nil {
		panic(fmt.Sprintf("Couldn't create tmp dir, %s", err))
	}
}

func CleanupTmpDir(tmpDir string) {
	cmd := exec.Command("find", tmpDir, "-type", "f", "-mtime", "+2", "-delete")
	err := cmd.Run()
	if err != nil {
		slog.Error(fmt.Sprintf("Error cleaning up tmp dir %s: %v\n", tmpDir, err))
	} else {
		slog.Info(fmt.Sprintf("Cleaned up files older than 2 days in %s\n", tmpDir))
	}
}

// SplitMessage breaks text into chunks that stay under limit bytes,
// accumulating whole lines per chunk. A single line longer than the
// limit becomes its own oversized chunk.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line)+1 > limit && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}
