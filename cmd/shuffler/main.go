package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-shuffler/internal/config"
	"github.com/hazadus/go-shuffler/internal/session"
)

const (
	defaultConfigPath = "~/.shuffler"
)

// Application хранит конфигурацию и зависимости, общие для всех команд
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	// Store переопределяет хранилище сессии из конфигурации
	Store session.Store
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := defaultConfigPath
	if path := os.Getenv("SHUFFLER_CONFIG"); path != "" {
		configPath = path
	}

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		return 1
	}

	// Терминал занят интерфейсом, поэтому журнал пишется в файл
	logger, logFile, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка открытия журнала: %v\n", err)
		return 1
	}
	defer logFile.Close()

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.createRootCommand(ctx).ExecuteContext(ctx); err != nil {
		logger.Error("команда завершилась с ошибкой", "error", err)
		return 1
	}
	return 0
}
