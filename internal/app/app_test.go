package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/mirror"
	"github.com/siddarth709/Portfolio/internal/storage"
)

func TestNewMirrorWithoutCredentialsIsLocalOnly(t *testing.T) {
	layout, err := config.NewLayout(t.TempDir())
	require.NoError(t, err)

	for _, backend := range []string{config.BackendGit, config.BackendObject} {
		cfg := &config.Config{Sync: config.SyncConfig{Backend: backend}}
		m, err := NewMirror(cfg, layout, slog.Default())
		require.NoError(t, err)
		assert.Equal(t, "nop", m.Name())

		res := m.Push(context.Background(), mirror.Change{})
		assert.True(t, res.OK())
		assert.True(t, res.Skipped)
	}
}

func TestNewMirrorGit(t *testing.T) {
	layout, err := config.NewLayout(t.TempDir())
	require.NoError(t, err)
	cfg := &config.Config{Sync: config.SyncConfig{Backend: config.BackendGit, Repo: "a/b", Token: "t", Host: "github.com"}}

	m, err := NewMirror(cfg, layout, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "git", m.Name())
}

func TestNewMirrorUnknownBackend(t *testing.T) {
	layout, err := config.NewLayout(t.TempDir())
	require.NoError(t, err)
	_, err = NewMirror(&config.Config{Sync: config.SyncConfig{Backend: "ftp"}}, layout, slog.Default())
	assert.Error(t, err)
}

func TestStorageOptionsFromConfig(t *testing.T) {
	opts := storageOptions(config.MinIOConfig{
		Endpoint:         "minio:9000",
		AccessKeyID:      "key",
		SecretAccessKey:  "secret",
		UseSSL:           true,
		Bucket:           "portfolio",
		Region:           "us-east-1",
		BucketLookup:     "path",
		AutoCreateBucket: true,
		Prefix:           "site",
	})
	assert.Equal(t, storage.Options{
		Endpoint:         "minio:9000",
		AccessKeyID:      "key",
		SecretAccessKey:  "secret",
		UseSSL:           true,
		Bucket:           "portfolio",
		Region:           "us-east-1",
		BucketLookup:     "path",
		AutoCreateBucket: true,
	}, opts)
}

func TestUploadDirsCoverEveryFolder(t *testing.T) {
	layout, err := config.NewLayout(t.TempDir())
	require.NoError(t, err)

	dirs := uploadDirs(layout)
	assert.Len(t, dirs, len(layout.Folders()))
	assert.Contains(t, dirs, "uploads/private")
	assert.Contains(t, dirs, "static/uploads/testimonials")
}
