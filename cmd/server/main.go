package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/atelier/internal/app"
	"github.com/nfrund/atelier/internal/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	a := app.New(cfg)
	defer a.Close()

	s, err := a.Server()
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(context.Background()); err != nil {
		slog.Error("Server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
}
