package main

import (
	"log/slog"
	"os"

	"hr-payroll/internal/app"
	"hr-payroll/internal/logger"
)

func main() {
	// Replaced by the configured logger once config loads.
	slog.SetDefault(logger.New(os.Stdout, "info", "pretty"))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
