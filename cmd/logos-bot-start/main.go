package main

import (
	"os"

	"github.com/logoscenter/logos-bot/internal/launcher"
)

func main() {
	os.Exit(launcher.New().Run())
}
