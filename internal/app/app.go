// Package app 按配置装配进程共享的组件：远端镜像、资产管理器、记录服务。
package app

import (
	"fmt"
	"log/slog"

	"github.com/siddarth709/Portfolio/internal/assets"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/content"
	"github.com/siddarth709/Portfolio/internal/metrics"
	"github.com/siddarth709/Portfolio/internal/mirror"
	"github.com/siddarth709/Portfolio/internal/storage"
)

// NewMirror 根据 sync.backend 构造远端镜像并包上指标。
// 缺少凭据时返回 mirror.Nop，进程以仅本地模式运行。
func NewMirror(cfg *config.Config, layout *config.Layout, logger *slog.Logger) (mirror.Mirror, error) {
	var m mirror.Mirror
	switch cfg.Sync.Backend {
	case config.BackendGit, "":
		if !cfg.Sync.Enabled() {
			logger.Info("remote sync disabled: GITHUB_REPO or GITHUB_TOKEN not set, running local-only")
			m = mirror.Nop{}
			break
		}
		m = mirror.NewGit(mirror.GitOptions{
			WorkDir:     layout.Root,
			RemoteURL:   cfg.Sync.PushURL(),
			Secret:      cfg.Sync.Token,
			Branch:      cfg.Sync.Branch,
			AuthorName:  cfg.Sync.AuthorName,
			AuthorEmail: cfg.Sync.AuthorEmail,
			Timeout:     cfg.Sync.Timeout,
			Logger:      logger,
		})
	case config.BackendObject:
		if !cfg.MinIO.Enabled() {
			logger.Info("remote sync disabled: MinIO endpoint or credentials not set, running local-only")
			m = mirror.Nop{}
			break
		}
		client, err := storage.NewClient(storageOptions(cfg.MinIO))
		if err != nil {
			return nil, fmt.Errorf("init storage client: %w", err)
		}
		m = mirror.NewObject(client, layout.Root, cfg.MinIO.Prefix, uploadDirs(layout), logger)
	default:
		return nil, fmt.Errorf("unknown sync backend %q", cfg.Sync.Backend)
	}

	logger.Info("remote mirror ready", slog.String("backend", m.Name()))
	return metrics.InstrumentMirror(m), nil
}

func storageOptions(m config.MinIOConfig) storage.Options {
	return storage.Options{
		Endpoint:         m.Endpoint,
		AccessKeyID:      m.AccessKeyID,
		SecretAccessKey:  m.SecretAccessKey,
		UseSSL:           m.UseSSL,
		Bucket:           m.Bucket,
		Region:           m.Region,
		BucketLookup:     m.BucketLookup,
		AutoCreateBucket: m.AutoCreateBucket,
	}
}

// uploadDirs 返回全部上传目录的相对路径，对象存储恢复时按目录前缀拉回文件。
func uploadDirs(layout *config.Layout) []string {
	folders := layout.Folders()
	dirs := make([]string, 0, len(folders))
	for _, f := range folders {
		dirs = append(dirs, f.Rel)
	}
	return dirs
}

// NewAssetManager 构造资产管理器；配置了 clamd 地址时启用上传扫描。
func NewAssetManager(cfg *config.Config, pusher assets.Pusher, logger *slog.Logger) *assets.Manager {
	var opts []assets.Option
	if cfg.Clamd.Addr != "" {
		opts = append(opts, assets.WithScanner(assets.ClamdScanner{Addr: cfg.Clamd.Addr}))
		logger.Info("upload scanning enabled", slog.String("clamd", cfg.Clamd.Addr))
	}
	return assets.NewManager(pusher, logger, opts...)
}

// NewContentService 装配记录服务。
func NewContentService(cfg *config.Config, layout *config.Layout, m mirror.Mirror, logger *slog.Logger) *content.Service {
	return content.NewService(layout, m, NewAssetManager(cfg, m, logger), logger)
}
