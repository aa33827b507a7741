// Package config loads the application configuration from a TOML file.
//
// Configuration resolves in three layers: compiled defaults, then the
// config file, then explicit overrides from CLI flags. A missing config
// file is not an error; the defaults apply.
//
// # File Layout
//
//	[grid]
//	cell_width = 100.0
//	cell_height = 70.0
//	header_width = 40.0
//	header_height = 36.0
//
//	[navigation]
//	zoom_min = 0.25
//	zoom_max = 4.0
//	zoom_step = 0.2
//	resistance = 0.3
//	resistance_zone = 50.0
//	origin = "anchor"
//
//	[store]
//	backend = "file"          # file, memory, mongo
//	path = ""                 # file backend base dir
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "isogrid"
//
//	[cache]
//	backend = "file"          # file, redis, none
//	dir = ""
//	redis_addr = "localhost:6379"
//	ttl_minutes = 60
//
//	[server]
//	listen = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/isogrid/isogrid/pkg/errors"
)

// GridConfig holds the track sizing defaults for grid templates.
type GridConfig struct {
	CellWidth    float64 `toml:"cell_width"`
	CellHeight   float64 `toml:"cell_height"`
	HeaderWidth  float64 `toml:"header_width"`
	HeaderHeight float64 `toml:"header_height"`
}

// NavigationConfig holds the pan/zoom tuning parameters.
type NavigationConfig struct {
	ZoomMin        float64 `toml:"zoom_min"`
	ZoomMax        float64 `toml:"zoom_max"`
	ZoomStep       float64 `toml:"zoom_step"`
	Resistance     float64 `toml:"resistance"`
	ResistanceZone float64 `toml:"resistance_zone"`
	Origin         string  `toml:"origin"` // anchor or bipolar
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend       string `toml:"backend"` // file, memory, mongo
	Path          string `toml:"path"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig selects and configures the layout cache backend.
type CacheConfig struct {
	Backend    string `toml:"backend"` // file, redis, none
	Dir        string `toml:"dir"`
	RedisAddr  string `toml:"redis_addr"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Listen string `toml:"listen"`
}

// Config is the full application configuration.
type Config struct {
	Grid       GridConfig       `toml:"grid"`
	Navigation NavigationConfig `toml:"navigation"`
	Store      StoreConfig      `toml:"store"`
	Cache      CacheConfig      `toml:"cache"`
	Server     ServerConfig     `toml:"server"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			CellWidth:    100,
			CellHeight:   70,
			HeaderWidth:  40,
			HeaderHeight: 36,
		},
		Navigation: NavigationConfig{
			ZoomMin:        0.25,
			ZoomMax:        4.0,
			ZoomStep:       0.2,
			Resistance:     0.3,
			ResistanceZone: 50,
			Origin:         "anchor",
		},
		Store: StoreConfig{
			Backend:       "file",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "isogrid",
		},
		Cache: CacheConfig{
			Backend:    "file",
			RedisAddr:  "localhost:6379",
			TTLMinutes: 60,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/isogrid/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "isogrid", "config.toml"), nil
}

// Load reads the config file at path, layered over the defaults.
// A missing file yields the defaults with no error. If path is empty the
// standard location is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Navigation.ZoomMin <= 0 || c.Navigation.ZoomMax <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom extent must be positive")
	}
	if c.Navigation.ZoomMin > c.Navigation.ZoomMax {
		return errors.New(errors.ErrCodeInvalidConfig,
			"zoom_min %.2f exceeds zoom_max %.2f", c.Navigation.ZoomMin, c.Navigation.ZoomMax)
	}
	switch c.Navigation.Origin {
	case "anchor", "bipolar":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid origin: %q", c.Navigation.Origin)
	}
	switch c.Store.Backend {
	case "file", "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid store backend: %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q", c.Cache.Backend)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}
