package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/siddarth709/Portfolio/internal/api"
	"github.com/siddarth709/Portfolio/internal/app"
	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/logging"
	"github.com/siddarth709/Portfolio/internal/store"
)

const defaultSecretKey = "dev_secret_key_change_me"

func main() {
	cfg := config.MustLoad()

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	layout, err := cfg.Layout()
	if err != nil {
		log.Fatalf("resolve storage layout: %v", err)
	}
	if err := layout.EnsureDirs(); err != nil {
		log.Fatalf("create storage directories: %v", err)
	}
	logger.Info("storage ready", slog.String("root", layout.Root))

	remote, err := app.NewMirror(cfg, layout, logger)
	if err != nil {
		log.Fatalf("init remote mirror: %v", err)
	}

	// 宿主文件系统可能在重新部署后被清空，启动时先从远端恢复数据文件。
	report := remote.Restore(context.Background(), store.RelPaths())
	logger.Info("startup restore finished",
		slog.Int("restored", len(report.Restored)),
		slog.Int("missing", len(report.Missing)),
		slog.Int("failed", len(report.Failed)),
	)

	if cfg.Auth.SecretKey == defaultSecretKey {
		logger.Warn("SECRET_KEY is not set, sessions are signed with the development key")
	}
	authService, err := auth.NewAuthService(
		cfg.Auth.SecretKey,
		cfg.Auth.AdminPassword,
		auth.NewTOTPVerifier(cfg.Auth.TOTPSecret),
		cfg.Auth.SessionTTL,
	)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, api.Dependencies{
		Content:             app.NewContentService(cfg, layout, remote, logger),
		Auth:                authService,
		TestimonialPassword: cfg.Auth.TestimonialPassword,
		ResearchPassword:    cfg.Auth.ResearchPassword,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
