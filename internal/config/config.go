package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from a .env file or environment variables.
// It is built once at startup and passed by pointer; nothing reads configuration lazily.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Sync    SyncConfig    `mapstructure:"sync"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Clamd   ClamdConfig   `mapstructure:"clamd"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// StorageConfig points at the directory holding data/ and the upload folders.
type StorageConfig struct {
	Root string `mapstructure:"root"`
}

// SyncConfig selects and configures the remote mirror.
type SyncConfig struct {
	Backend     string        `mapstructure:"backend"`
	Repo        string        `mapstructure:"repo"`
	Token       string        `mapstructure:"token"`
	Branch      string        `mapstructure:"branch"`
	Host        string        `mapstructure:"host"`
	RemoteURL   string        `mapstructure:"remote_url"`
	AuthorName  string        `mapstructure:"author_name"`
	AuthorEmail string        `mapstructure:"author_email"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage used by the object mirror.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
	Prefix           string `mapstructure:"prefix"`
}

// AuthConfig holds the admin credential, the fixed TOTP secret and the session signing key.
type AuthConfig struct {
	AdminPassword       string        `mapstructure:"admin_password"`
	TOTPSecret          string        `mapstructure:"totp_secret"`
	SecretKey           string        `mapstructure:"secret_key"`
	SessionTTL          time.Duration `mapstructure:"session_ttl"`
	TestimonialPassword string        `mapstructure:"testimonial_password"`
	ResearchPassword    string        `mapstructure:"research_password"`
}

// ClamdConfig enables upload scanning when Addr is set.
type ClamdConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig controls the slog handler and its destination.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

const (
	BackendGit    = "git"
	BackendObject = "object"
)

// Enabled reports whether remote credentials are present; without them the app runs local-only.
func (s SyncConfig) Enabled() bool {
	return strings.TrimSpace(s.Repo) != "" && strings.TrimSpace(s.Token) != ""
}

// PushURL builds the authenticated git remote URL, unless remote_url overrides it.
func (s SyncConfig) PushURL() string {
	if s.RemoteURL != "" {
		return s.RemoteURL
	}
	u := url.URL{
		Scheme: "https",
		User:   url.UserPassword("x-access-token", s.Token),
		Host:   s.Host,
		Path:   "/" + strings.TrimSuffix(strings.Trim(s.Repo, "/"), ".git") + ".git",
	}
	return u.String()
}

// Enabled reports whether object mirror credentials are present.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != "" && m.AccessKeyID != "" && m.SecretAccessKey != "" && m.Bucket != ""
}

// Load reads configuration from an optional .env file and the environment (with defaults).
func Load() (*Config, error) {
	return load(validate)
}

// LoadStorage is Load without the auth checks, for tooling that only touches data and the mirror.
func LoadStorage() (*Config, error) {
	return load(validateStorage)
}

func load(check func(Config) error) (*Config, error) {
	// .env is optional; production injects real environment variables.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := check(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.mode", "release")
	v.SetDefault("storage.root", ".")
	v.SetDefault("sync.backend", BackendGit)
	v.SetDefault("sync.branch", "main")
	v.SetDefault("sync.host", "github.com")
	v.SetDefault("sync.author_name", "Portfolio Admin")
	v.SetDefault("sync.author_email", "admin@localhost")
	v.SetDefault("sync.timeout", time.Duration(0))
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "portfolio")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("auth.secret_key", "dev_secret_key_change_me")
	v.SetDefault("auth.session_ttl", 12*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                  "API_PORT",
		"api.mode":                  "GIN_MODE",
		"storage.root":              "STORAGE_ROOT",
		"sync.backend":              "SYNC_BACKEND",
		"sync.repo":                 "GITHUB_REPO",
		"sync.token":                "GITHUB_TOKEN",
		"sync.branch":               "SYNC_BRANCH",
		"sync.host":                 "SYNC_HOST",
		"sync.remote_url":           "SYNC_REMOTE_URL",
		"sync.author_name":          "SYNC_AUTHOR_NAME",
		"sync.author_email":         "SYNC_AUTHOR_EMAIL",
		"sync.timeout":              "SYNC_TIMEOUT",
		"minio.endpoint":            "MINIO_ENDPOINT",
		"minio.access_key_id":       "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":   "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":             "MINIO_USE_SSL",
		"minio.bucket":              "MINIO_BUCKET",
		"minio.region":              "MINIO_REGION",
		"minio.bucket_lookup":       "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket":  "MINIO_AUTO_CREATE_BUCKET",
		"minio.prefix":              "MINIO_PREFIX",
		"auth.admin_password":       "ADMIN_PASSWORD",
		"auth.totp_secret":          "TOTP_SECRET",
		"auth.secret_key":           "SECRET_KEY",
		"auth.session_ttl":          "SESSION_TTL",
		"auth.testimonial_password": "TESTIMONIAL_PASSWORD",
		"auth.research_password":    "RESEARCH_PASSWORD",
		"clamd.addr":                "CLAMD_ADDR",
		"log.level":                 "LOG_LEVEL",
		"log.format":                "LOG_FORMAT",
		"log.file":                  "LOG_FILE",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if err := validateStorage(cfg); err != nil {
		return err
	}
	if cfg.Auth.AdminPassword == "" {
		return errors.New("admin password is required")
	}
	if cfg.Auth.TOTPSecret == "" {
		return errors.New("totp secret is required")
	}
	if cfg.Auth.SecretKey == "" {
		return errors.New("secret key is required")
	}
	if cfg.Auth.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	return nil
}

func validateStorage(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if strings.TrimSpace(cfg.Storage.Root) == "" {
		return errors.New("storage root is required")
	}
	switch cfg.Sync.Backend {
	case BackendGit, BackendObject:
	default:
		return fmt.Errorf("unknown sync backend %q", cfg.Sync.Backend)
	}
	if cfg.Sync.Branch == "" {
		return errors.New("sync branch is required")
	}
	if cfg.Sync.Timeout < 0 {
		return errors.New("sync timeout must not be negative")
	}
	return nil
}
