package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/portfolio/contact-api/internal/cli"
	"github.com/portfolio/contact-api/internal/logging"
)

func main() {
	_ = godotenv.Load()
	// Logs go to stderr so list output stays machine-readable.
	slog.SetDefault(logging.New(os.Stderr, os.Getenv("LOG_LEVEL")))

	if err := cli.NewRootCommand(cli.Options{}).ExecuteContext(context.Background()); err != nil {
		slog.Error("contactctl failed", "error", err)
		os.Exit(1)
	}
}
