package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultPollInterval = 10 * time.Second
	DefaultPort         = "8080"
)

// Config holds the client settings. Precedence: defaults, then the YAML file,
// then environment variables.
type Config struct {
	APIURL       string        `yaml:"api_url"`
	WSURL        string        `yaml:"ws_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`

	Session       SessionConfig       `yaml:"session"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Server        ServerConfig        `yaml:"server"`
}

// SessionConfig selects the store holding the token/profile pair.
type SessionConfig struct {
	Backend       string        `yaml:"backend"` // file, sqlite, postgres, redis, memory
	Path          string        `yaml:"path"`
	DatabaseURL   string        `yaml:"database_url"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`
}

type NotificationsConfig struct {
	// SurfaceErrors reports notification fetch failures instead of dropping them.
	SurfaceErrors bool `yaml:"surface_errors"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Defaults() Config {
	return Config{
		APIURL:       DefaultAPIURL,
		PollInterval: DefaultPollInterval,
		MaxAttempts:  1,
		Session: SessionConfig{
			Backend: "file",
			Path:    defaultSessionPath(),
		},
		Server: ServerConfig{Port: DefaultPort},
	}
}

// Load reads .env (if present), the YAML file named by PARTSCTL_CONFIG or
// path, and environment overrides.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found (using environment variables)")
	}

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("PARTSCTL_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if cfg.WSURL == "" {
		ws, err := DeriveWSURL(cfg.APIURL)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg.WSURL = ws
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("load config: parse %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.APIURL = Get("PARTS_API_URL", cfg.APIURL)
	cfg.WSURL = Get("PARTS_WS_URL", cfg.WSURL)
	cfg.Session.Backend = Get("SESSION_BACKEND", cfg.Session.Backend)
	cfg.Session.Path = Get("SESSION_PATH", cfg.Session.Path)
	cfg.Session.DatabaseURL = Get("DATABASE_URL", cfg.Session.DatabaseURL)
	cfg.Session.RedisAddr = Get("REDIS_ADDR", cfg.Session.RedisAddr)
	cfg.Session.RedisPassword = Get("REDIS_PASSWORD", cfg.Session.RedisPassword)
	cfg.Server.Port = Get("PORT", cfg.Server.Port)

	var err error
	if cfg.PollInterval, err = getDuration("PARTS_POLL_INTERVAL", cfg.PollInterval); err != nil {
		return err
	}
	if cfg.HTTPTimeout, err = getDuration("PARTS_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return err
	}
	if cfg.Session.RedisTTL, err = getDuration("REDIS_TTL", cfg.Session.RedisTTL); err != nil {
		return err
	}
	if cfg.MaxAttempts, err = getInt("PARTS_MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return err
	}
	if cfg.Session.RedisDB, err = getInt("REDIS_DB", cfg.Session.RedisDB); err != nil {
		return err
	}
	if cfg.Notifications.SurfaceErrors, err = getBool("NOTIFICATIONS_SURFACE_ERRORS", cfg.Notifications.SurfaceErrors); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api_url %q must be an absolute http(s) URL", c.APIURL)
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("http_timeout must not be negative")
	}
	if c.MaxAttempts < 1 {
		return errors.New("max_attempts must be at least 1")
	}

	switch c.Session.Backend {
	case "memory":
	case "file", "sqlite":
		if strings.TrimSpace(c.Session.Path) == "" {
			return fmt.Errorf("session.path is required for the %s backend", c.Session.Backend)
		}
	case "postgres":
		if strings.TrimSpace(c.Session.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for the postgres session backend")
		}
	case "redis":
		if strings.TrimSpace(c.Session.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	return nil
}

// DeriveWSURL maps http(s)://host/base to ws(s)://host/base/ws.
func DeriveWSURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("derive ws url from %q: %w", apiURL, err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("derive ws url: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String(), nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".partsctl", "session.json")
	}
	return filepath.Join(dir, "partsctl", "session.json")
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}
