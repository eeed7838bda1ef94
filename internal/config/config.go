// Package config handles the XDG configuration directory, its files, and
// the optional config.toml settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// StoreFile is the SQLite key-value store filename.
	StoreFile = "taskflow.db"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.toml"

	// DefaultAuthDelay is the simulated latency of login and signup.
	DefaultAuthDelay = time.Second
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Store is the store backend: "sqlite" or "memory".
	Store string

	// AuthDelay is the simulated latency of login and signup.
	AuthDelay time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives debug logs. Nil discards them.
	Logger *log.Logger
}

// settings mirrors config.toml.
type settings struct {
	Store     string `toml:"store"`
	AuthDelay string `toml:"auth_delay"`
}

// New creates a Config with the default or specified config directory and
// default settings.
// If configDir is empty, uses XDG_CONFIG_HOME/taskflow or $HOME/.config/taskflow.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		Store:     StoreSQLite,
		AuthDelay: DefaultAuthDelay,
	}, nil
}

// Load is New followed by reading config.toml, if present.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	var s settings
	md, err := toml.DecodeFile(cfg.SettingsPath(), &s)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("invalid %s: unknown keys: %s", SettingsFile, strings.Join(keys, ", "))
	}

	if s.Store != "" {
		switch s.Store {
		case StoreSQLite, StoreMemory:
			cfg.Store = s.Store
		default:
			return nil, fmt.Errorf("invalid %s: unknown store: %s", SettingsFile, s.Store)
		}
	}
	if s.AuthDelay != "" {
		d, err := time.ParseDuration(s.AuthDelay)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid %s: bad auth_delay: %s", SettingsFile, s.AuthDelay)
		}
		cfg.AuthDelay = d
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// StorePath returns the path to the SQLite store.
func (c *Config) StorePath() string {
	return filepath.Join(c.Dir, StoreFile)
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// NewLogger creates the stderr logger: debug level when debug is set,
// warnings and above otherwise.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: AppName,
	})
}
