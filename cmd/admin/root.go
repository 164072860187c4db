package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/siddarth709/Portfolio/internal/app"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/logging"
	"github.com/siddarth709/Portfolio/internal/mirror"
)

var rootCmd = &cobra.Command{
	Use:           "portfolio-admin",
	Short:         "Maintenance commands for the portfolio content store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(restoreCmd, pushCmd, hashPasswordCmd, totpURICmd)
}

// env 是命令共享的运行环境：配置、数据布局与远端镜像。
type env struct {
	cfg    *config.Config
	layout *config.Layout
	mirror mirror.Mirror
	logger *slog.Logger
	close  func() error
}

// loadEnv 只加载存储与同步相关配置，不要求管理员凭据。
func loadEnv() (*env, error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, fmt.Errorf("resolve storage layout: %w", err)
	}
	if err := layout.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create storage directories: %w", err)
	}
	m, err := app.NewMirror(cfg, layout, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, layout: layout, mirror: m, logger: logger, close: closeLog}, nil
}
