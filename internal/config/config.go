package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/babyregalo/internal/storage"
)

// Config captures everything the registry needs at startup.
type Config struct {
	ShareBaseURL string
	Storage      storage.Backend
	DataDir      string
	LogFile      string
	AdminPIN     string
}

const (
	defaultConfigPath   = "~/.config/babyregalo/config.toml"
	defaultDataDir      = "~/.local/share/babyregalo"
	defaultShareBaseURL = "https://babyregalo.app/"
	defaultAdminPIN     = "1234"
	sqliteFileName      = "registry.sqlite"
	logFileName         = "babyregalo.log"
)

type rawConfig struct {
	ShareBaseURL string `toml:"share_base_url" env:"BABYREGALO_SHARE_BASE_URL"`
	Storage      string `toml:"storage" env:"BABYREGALO_STORAGE"`
	DataDir      string `toml:"data_dir" env:"BABYREGALO_DATA_DIR"`
	LogFile      string `toml:"log_file" env:"BABYREGALO_LOG_FILE"`
	AdminPIN     string `toml:"admin_pin" env:"BABYREGALO_ADMIN_PIN"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if len(bytes) > 0 {
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return raw.resolve()
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Config{
		ShareBaseURL: strings.TrimSpace(raw.ShareBaseURL),
		AdminPIN:     strings.TrimSpace(raw.AdminPIN),
	}
	if cfg.ShareBaseURL == "" {
		cfg.ShareBaseURL = defaultShareBaseURL
	}
	if cfg.AdminPIN == "" {
		cfg.AdminPIN = defaultAdminPIN
	}

	backend, err := storage.ParseBackend(raw.Storage)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Storage = backend

	cfg.DataDir = strings.TrimSpace(raw.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.DataDir = mustExpand(cfg.DataDir)

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

// StoragePath returns the path handed to storage.Open for the configured
// backend: the data directory for file storage, a database file for sqlite.
func (c Config) StoragePath() string {
	dir := c.DataDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultDataDir)
	}
	if c.Storage == storage.BackendSQLite {
		return filepath.Join(dir, sqliteFileName)
	}
	return dir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
