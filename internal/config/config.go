package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	// DBPath is the SQLite database file. Empty means store.DefaultDBPath.
	DBPath     string
	Validation ValidationConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            int
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
}

// ValidationConfig configures challenge scoring.
type ValidationConfig struct {
	AwardPoints    int
	PersistTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			CORSOrigins:     []string{"*"},
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Validation: ValidationConfig{
			AwardPoints:    100,
			PersistTimeout: 5 * time.Second,
		},
	}
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// FileConfig is the on-disk YAML shape. Pointer fields distinguish unset keys
// from zero values so that only keys present in the file override defaults.
type FileConfig struct {
	Host            *string   `yaml:"host"`
	Port            *int      `yaml:"port"`
	CORSOrigins     *[]string `yaml:"cors_origins"`
	RequestTimeout  *string   `yaml:"request_timeout"`
	ShutdownTimeout *string   `yaml:"shutdown_timeout"`
	LogLevel        *string   `yaml:"log_level"`
	LogFormat       *string   `yaml:"log_format"`
	DB              *string   `yaml:"db"`
	AwardPoints     *int      `yaml:"award_points"`
	PersistTimeout  *string   `yaml:"persist_timeout"`
}

// ErrNoConfigFile is returned by Locate when no config file exists.
var ErrNoConfigFile = errors.New("no config file")

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// Locate searches for a config file in dir (devsecquest.yml/.yaml) and then
// in $XDG_CONFIG_HOME/devsecquest/config.yml (or ~/.config).
func Locate(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "devsecquest.yml"),
		filepath.Join(dir, "devsecquest.yaml"),
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		if home, _ := os.UserHomeDir(); home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base != "" {
		candidates = append(candidates, filepath.Join(base, "devsecquest", "config.yml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrNoConfigFile
}

// Apply overlays the keys set in fc onto c.
func (fc FileConfig) Apply(c *Config) error {
	if fc.Host != nil {
		c.Server.Host = *fc.Host
	}
	if fc.Port != nil {
		c.Server.Port = *fc.Port
	}
	if fc.CORSOrigins != nil {
		c.Server.CORSOrigins = *fc.CORSOrigins
	}
	if err := setDuration(&c.Server.RequestTimeout, fc.RequestTimeout, "request_timeout"); err != nil {
		return err
	}
	if err := setDuration(&c.Server.ShutdownTimeout, fc.ShutdownTimeout, "shutdown_timeout"); err != nil {
		return err
	}
	if fc.LogLevel != nil {
		c.Log.Level = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		c.Log.Format = *fc.LogFormat
	}
	if fc.DB != nil {
		c.DBPath = *fc.DB
	}
	if fc.AwardPoints != nil {
		c.Validation.AwardPoints = *fc.AwardPoints
	}
	return setDuration(&c.Validation.PersistTimeout, fc.PersistTimeout, "persist_timeout")
}

// ApplyEnv overlays environment variables onto c.
func ApplyEnv(c *Config, getenv func(string) string) error {
	if v := getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("DEVSECQUEST_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := getenv("DEVSECQUEST_DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv("DEVSECQUEST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("DEVSECQUEST_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("DEVSECQUEST_AWARD_POINTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEVSECQUEST_AWARD_POINTS: %w", err)
		}
		c.Validation.AwardPoints = n
	}
	if v := getenv("DEVSECQUEST_PERSIST_TIMEOUT"); v != "" {
		if err := setDuration(&c.Validation.PersistTimeout, &v, "DEVSECQUEST_PERSIST_TIMEOUT"); err != nil {
			return err
		}
	}
	return nil
}

// Load builds a Config from defaults, the YAML file at path (or a located
// one when path is empty), and the process environment, in that order.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := Locate(".")
		if err != nil && !errors.Is(err, ErrNoConfigFile) {
			return cfg, err
		}
		path = p
	}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := fc.Apply(&cfg); err != nil {
			return cfg, fmt.Errorf("apply %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, fmt.Errorf("apply env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}
	if c.Validation.AwardPoints < 0 {
		return fmt.Errorf("award points must not be negative, got %d", c.Validation.AwardPoints)
	}
	if c.Validation.PersistTimeout <= 0 {
		return fmt.Errorf("persist timeout must be positive, got %s", c.Validation.PersistTimeout)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func setDuration(dst *time.Duration, v *string, key string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
