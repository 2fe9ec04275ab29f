package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Donny1114/Device-Management-System/internal/config"
	"github.com/Donny1114/Device-Management-System/internal/service"
	"github.com/Donny1114/Device-Management-System/internal/shell"
	"github.com/Donny1114/Device-Management-System/internal/utils"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("devicectl: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// the console owns stdout, so logs go to stderr and default to warnings
	level := cfg.Logging.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logger, err := utils.NewLogger(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	hasher, err := utils.NewPasswordHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := config.OpenStore(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	// an unreachable database is reported per action once the user acts
	if err := store.Ping(ctx); err != nil {
		logger.Warn("database not reachable at startup", zap.String("host", cfg.Database.Host), zap.Error(err))
	}

	actions := shell.NewActions(
		service.NewAuthService(store.Users, hasher, nil, logger),
		service.NewDeviceService(store.Devices, logger),
		service.NewReportService(store.Devices, logger),
		shell.NewConsoleNotifier(os.Stdout),
		logger,
	)

	return shell.NewConsole(os.Stdin, os.Stdout, actions).Run(ctx)
}
