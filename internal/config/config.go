// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for shopfront.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/shopfront-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the root configuration, stored as TOML in ~/.shopfront/config.toml.
type Config struct {
	Store    StoreConfig    `toml:"store" json:"store"`
	Security SecurityConfig `toml:"security" json:"security"`
	UI       UIConfig       `toml:"ui" json:"ui"`
	Logging  LoggingConfig  `toml:"logging" json:"logging"`
	Server   ServerConfig   `toml:"server" json:"server"`
}

// StoreConfig selects the key-value backend holding session flags.
type StoreConfig struct {
	// Backend is one of sqlite, file, memory, redis.
	Backend string `toml:"backend" json:"backend"`

	// DataDir holds the sqlite database / JSON file. Empty means ~/.shopfront.
	DataDir string `toml:"data_dir" json:"data_dir"`

	// RedisAddr and RedisPrefix apply to the redis backend only.
	RedisAddr   string `toml:"redis_addr" json:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix" json:"redis_prefix"`
}

// SecurityConfig holds the lockout and security log limits.
type SecurityConfig struct {
	MaxLoginAttempts int    `toml:"max_login_attempts" json:"max_login_attempts"`
	MaxLogs          int    `toml:"max_logs" json:"max_logs"`
	MaxAlerts        int    `toml:"max_alerts" json:"max_alerts"`
	ClientIP         string `toml:"client_ip" json:"client_ip"`

	// LoginDelay simulates the network round trip of login and signup.
	LoginDelay Duration `toml:"login_delay" json:"login_delay"`

	SeedSampleLogs bool `toml:"seed_sample_logs" json:"seed_sample_logs"`
}

// UIConfig holds TUI preferences.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`

	// ToastTimeout is how long alert toasts stay on screen.
	ToastTimeout Duration `toml:"toast_timeout" json:"toast_timeout"`

	ShowKeyHelp bool `toml:"show_key_help" json:"show_key_help"`
}

// LoggingConfig controls the structured application log.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level"`

	// File is the log path. Empty means ~/.shopfront/logs/shopfront.log.
	File string `toml:"file" json:"file"`
}

// ServerConfig controls the optional local admin API (shopfront serve).
type ServerConfig struct {
	Addr         string   `toml:"addr" json:"addr"`
	JWTSecret    string   `toml:"jwt_secret" json:"-"`
	TokenTTL     Duration `toml:"token_ttl" json:"token_ttl"`
	RateLimit    float64  `toml:"rate_limit" json:"rate_limit"`
	RateBurst    int      `toml:"rate_burst" json:"rate_burst"`
	AllowOrigins []string `toml:"allow_origins" json:"allow_origins"`
	StatsRefresh Duration `toml:"stats_refresh" json:"stats_refresh"`
}

// Duration wraps time.Duration so it reads and writes as "1s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:     "sqlite",
			RedisAddr:   "127.0.0.1:6379",
			RedisPrefix: "shopfront:",
		},
		Security: SecurityConfig{
			MaxLoginAttempts: 3,
			MaxLogs:          100,
			MaxAlerts:        10,
			ClientIP:         "192.168.1.1",
			LoginDelay:       Duration{time.Second},
			SeedSampleLogs:   true,
		},
		UI: UIConfig{
			Theme:        "auto",
			ToastTimeout: Duration{10 * time.Second},
			ShowKeyHelp:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			TokenTTL:     Duration{time.Hour},
			RateLimit:    5,
			RateBurst:    20,
			AllowOrigins: []string{"http://localhost:5173"},
			StatsRefresh: Duration{15 * time.Second},
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns ~/.shopfront.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".shopfront"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the directory holding persisted state, honouring
// store.data_dir when set.
func (c *Config) DataDir() (string, error) {
	if c.Store.DataDir != "" {
		return c.Store.DataDir, nil
	}
	return Dir()
}

// LogFile returns the application log path.
func (c *Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "shopfront.log"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the default config file. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path (if it exists), applies .env and SHOPFRONT_*
// overrides, fills zero values from Default and validates the result.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env is optional; it only seeds variables not already set.
	_ = godotenv.Load()

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML with 0600 permissions.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# shopfront configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SetDefaults replaces zero values with defaults. Booleans are left alone.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = def.Store.RedisAddr
	}
	if c.Store.RedisPrefix == "" {
		c.Store.RedisPrefix = def.Store.RedisPrefix
	}
	if c.Security.MaxLoginAttempts == 0 {
		c.Security.MaxLoginAttempts = def.Security.MaxLoginAttempts
	}
	if c.Security.MaxLogs == 0 {
		c.Security.MaxLogs = def.Security.MaxLogs
	}
	if c.Security.MaxAlerts == 0 {
		c.Security.MaxAlerts = def.Security.MaxAlerts
	}
	if c.Security.ClientIP == "" {
		c.Security.ClientIP = def.Security.ClientIP
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.ToastTimeout.Duration == 0 {
		c.UI.ToastTimeout = def.UI.ToastTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.TokenTTL.Duration == 0 {
		c.Server.TokenTTL = def.Server.TokenTTL
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = def.Server.RateLimit
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = def.Server.RateBurst
	}
	if c.Server.StatsRefresh.Duration == 0 {
		c.Server.StatsRefresh = def.Server.StatsRefresh
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every ValidationError found in one pass.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Store.Backend {
	case "sqlite", "file", "memory", "redis":
	default:
		errs = append(errs, ValidationError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend %q, must be one of: sqlite, file, memory, redis", c.Store.Backend),
		})
	}

	if c.Security.MaxLoginAttempts < 1 {
		errs = append(errs, ValidationError{Field: "security.max_login_attempts", Message: "must be at least 1"})
	}
	if c.Security.MaxLogs < 1 {
		errs = append(errs, ValidationError{Field: "security.max_logs", Message: "must be at least 1"})
	}
	if c.Security.MaxAlerts < 1 {
		errs = append(errs, ValidationError{Field: "security.max_alerts", Message: "must be at least 1"})
	}
	if c.Security.LoginDelay.Duration < 0 || c.Security.LoginDelay.Duration > time.Minute {
		errs = append(errs, ValidationError{Field: "security.login_delay", Message: "must be between 0s and 1m"})
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q, must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit", Message: "must not be negative"})
	}
	if c.Server.RateBurst < 1 {
		errs = append(errs, ValidationError{Field: "server.rate_burst", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies SHOPFRONT_* environment variables.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SHOPFRONT_DATA_DIR"); v != "" {
		c.Store.DataDir = v
	}
	if v := os.Getenv("SHOPFRONT_STORE"); v != "" {
		c.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("SHOPFRONT_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("SHOPFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SHOPFRONT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if n, ok := envInt("SHOPFRONT_MAX_LOGIN_ATTEMPTS"); ok {
		c.Security.MaxLoginAttempts = n
	}
	if n, ok := envInt("SHOPFRONT_MAX_LOGS"); ok {
		c.Security.MaxLogs = n
	}
	if n, ok := envInt("SHOPFRONT_MAX_ALERTS"); ok {
		c.Security.MaxAlerts = n
	}
	if v := os.Getenv("SHOPFRONT_CLIENT_IP"); v != "" {
		c.Security.ClientIP = v
	}
	if v := os.Getenv("SHOPFRONT_LOGIN_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Security.LoginDelay = Duration{d}
		}
	}
	if v := os.Getenv("SHOPFRONT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SHOPFRONT_JWT_SECRET"); v != "" {
		c.Server.JWTSecret = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
