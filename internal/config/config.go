package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/idilsaglam/notes/internal/model"
)

const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	defaultBackend        = BackendFile
	defaultKey            = "notes"
	defaultRedisAddr      = "127.0.0.1:6379"
	defaultRedisNamespace = "notes:"
	defaultTheme          = "classic"
	defaultHideDelay      = 3 * time.Second
	defaultLogLevel       = "info"
	boltFileName          = "notes.db"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

type StorageConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Key     string      `toml:"key"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	DB        int    `toml:"db"`
	Namespace string `toml:"namespace"`
}

type UIConfig struct {
	Theme        string `toml:"theme"`
	HideDelay    string `toml:"hide_delay"`
	DefaultColor string `toml:"default_color"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: defaultBackend,
			Key:     defaultKey,
			Redis: RedisConfig{
				Addr:      defaultRedisAddr,
				Namespace: defaultRedisNamespace,
			},
		},
		UI: UIConfig{
			Theme:        defaultTheme,
			HideDelay:    defaultHideDelay.String(),
			DefaultColor: string(model.DefaultColor),
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
	}
}

// Load reads the config at path, or at ConfigPath() when path is blank.
// A missing or empty file yields the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend() {
	case BackendFile, BackendBolt, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if v := strings.TrimSpace(c.UI.HideDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ui.hide_delay: %w", err)
		}
		if d < 0 {
			return errors.New("ui.hide_delay must not be negative")
		}
	}
	if v := strings.TrimSpace(c.UI.DefaultColor); v != "" {
		if _, err := model.ParseColor(v); err != nil {
			return fmt.Errorf("ui.default_color: %w", err)
		}
	}
	return nil
}

// Encode renders the config as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c Config) Backend() string {
	b := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if b == "" {
		return defaultBackend
	}
	return b
}

// StorageDir is where file and bolt backends keep their data.
func (c Config) StorageDir() (string, error) {
	if dir := strings.TrimSpace(c.Storage.Dir); dir != "" {
		return expandHome(dir), nil
	}
	return DataDir()
}

func (c Config) BoltPath() (string, error) {
	dir, err := c.StorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, boltFileName), nil
}

func (c Config) StorageKey() string {
	if k := strings.TrimSpace(c.Storage.Key); k != "" {
		return k
	}
	return defaultKey
}

func (c Config) RedisAddr() string {
	if a := strings.TrimSpace(c.Storage.Redis.Addr); a != "" {
		return a
	}
	return defaultRedisAddr
}

func (c Config) RedisNamespace() string {
	return c.Storage.Redis.Namespace
}

func (c Config) Theme() string {
	if t := strings.TrimSpace(c.UI.Theme); t != "" {
		return strings.ToLower(t)
	}
	return defaultTheme
}

func (c Config) HideDelay() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.UI.HideDelay))
	if err != nil || d < 0 {
		return defaultHideDelay
	}
	return d
}

func (c Config) DefaultColor() model.Color {
	col, err := model.ParseColor(c.UI.DefaultColor)
	if err != nil {
		return model.DefaultColor
	}
	return col
}

func (c Config) LogLevel() string {
	if l := strings.TrimSpace(c.Logging.Level); l != "" {
		return strings.ToLower(l)
	}
	return defaultLogLevel
}

// LogFile returns the configured log file, falling back to LogPath().
func (c Config) LogFile() (string, error) {
	if f := strings.TrimSpace(c.Logging.File); f != "" {
		return expandHome(f), nil
	}
	return LogPath()
}

func readTOML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
