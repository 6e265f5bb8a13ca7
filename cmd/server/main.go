package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/hausmate/hausmate/internal/api"
	"github.com/hausmate/hausmate/internal/auth"
	"github.com/hausmate/hausmate/internal/config"
	"github.com/hausmate/hausmate/internal/service"
	"github.com/hausmate/hausmate/internal/storage/sqlite"
	"github.com/hausmate/hausmate/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	handler := api.NewHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewHouseholdService(store),
		service.NewExpenseService(store),
	)

	router := api.NewRouter(handler, jwtManager)

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
