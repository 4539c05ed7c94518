package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"shopsmart/internal/shopping"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "shopsmart.db"
	DefaultOrdersDir      = "orders"
	DefaultLogName        = "shopsmart.log"

	// EnvConfigPath overrides the config location.
	EnvConfigPath = "SHOPSMART_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	Checkout string `toml:"checkout"`
	Orders   string `toml:"orders"`
	Back     string `toml:"back"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Next     string `toml:"next_field"`
}

type ImageSearch struct {
	Endpoint       string `toml:"endpoint"`
	AccessKey      string `toml:"access_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func (s ImageSearch) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type Config struct {
	DBPath      string      `toml:"db_path"`
	OrdersDir   string      `toml:"orders_dir"`
	LogPath     string      `toml:"log_path"`
	LogLevel    string      `toml:"log_level"`
	Currency    string      `toml:"currency"`
	DateLayout  string      `toml:"date_layout"`
	ImageSearch ImageSearch `toml:"image_search"`
	Keys        Keymap      `toml:"keys"`
}

// ResolveConfigPath picks the config file: explicit flag, then
// $SHOPSMART_CONFIG, then ~/.config/shopsmart/config.toml.
func ResolveConfigPath(flagValue string) string {
	for _, candidate := range []string{flagValue, os.Getenv(EnvConfigPath)} {
		if candidate == "" {
			continue
		}
		if expanded, err := homedir.Expand(candidate); err == nil {
			return expanded
		}
		return candidate
	}
	home, err := homedir.Dir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", "shopsmart", DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Relative data paths are resolved against the config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.OrdersDir == "" {
		cfg.OrdersDir = DefaultOrdersDir
	}
	if cfg.Currency == "" {
		cfg.Currency = "₹"
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = shopping.DefaultDayLayout
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(base string) Config {
	c.DBPath = resolvePath(base, c.DBPath)
	c.OrdersDir = resolvePath(base, c.OrdersDir)
	if c.LogPath != "" {
		c.LogPath = resolvePath(base, c.LogPath)
	}
	return c
}

func resolvePath(base, p string) string {
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default is the configuration written on first launch.
func Default() Config {
	return Config{
		DBPath:     DefaultDBName,
		OrdersDir:  DefaultOrdersDir,
		LogPath:    DefaultLogName,
		LogLevel:   "info",
		Currency:   "₹",
		DateLayout: shopping.DefaultDayLayout,
		ImageSearch: ImageSearch{
			Endpoint:       "https://api.unsplash.com/search/photos",
			TimeoutSeconds: 10,
		},
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Toggle:   " ",
			Delete:   "d",
			Checkout: "c",
			Orders:   "o",
			Back:     "b",
			Confirm:  "enter",
			Cancel:   "esc",
			Next:     "tab",
		},
	}
}
