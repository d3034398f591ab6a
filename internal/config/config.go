package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	DefaultFileName = "zentask.yaml"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Backend     string `yaml:"backend"`
	DataDir     string `yaml:"data_dir"`
	SQLitePath  string `yaml:"sqlite_path"`
	FilePath    string `yaml:"file_path"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
	// RedisBreakerThreshold is the consecutive failure count that opens the
	// circuit around redis calls.
	RedisBreakerThreshold int    `yaml:"redis_breaker_threshold"`
	ExportDir             string `yaml:"export_dir"`
	LogLevel              string `yaml:"log_level"`
	LogFile               string `yaml:"log_file"`
	SeedDefaults          bool   `yaml:"seed_defaults"`
}

func Default() Config {
	return Config{
		Backend:               BackendSQLite,
		DataDir:               defaultDataDir(),
		RedisURL:              "redis://localhost:6379/0",
		RedisPrefix:           "zentask",
		RedisBreakerThreshold: 3,
		ExportDir:             ".",
		LogLevel:              "info",
		SeedDefaults:          true,
	}
}

// Load layers the YAML file at path (or ./zentask.yaml when path is empty and
// the file exists), then .env, then ZENTASK_* variables over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	_ = godotenv.Load()
	cfg = FromEnv(cfg)
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("ZENTASK_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("ZENTASK_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("ZENTASK_SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("ZENTASK_FILE_PATH"); ok {
		cfg.FilePath = v
	}
	if v, ok := getEnvString("ZENTASK_REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := getEnvString("ZENTASK_REDIS_PREFIX"); ok {
		cfg.RedisPrefix = v
	}
	if v, ok := getEnvInt("ZENTASK_REDIS_BREAKER_THRESHOLD"); ok && v > 0 {
		cfg.RedisBreakerThreshold = v
	}
	if v, ok := getEnvString("ZENTASK_EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := getEnvString("ZENTASK_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("ZENTASK_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("ZENTASK_SEED_DEFAULTS"); ok {
		cfg.SeedDefaults = v
	}
	return cfg
}

func (c *Config) resolvePaths() {
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.DataDir, "zentask.db")
	}
	if c.FilePath == "" {
		c.FilePath = filepath.Join(c.DataDir, "zentask.json")
	}
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.Backend == BackendRedis && c.RedisURL == "" {
		return fmt.Errorf("%w: redis backend needs a redis url", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, raw)
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "zentask")
	}
	return ".zentask"
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
