// Package config loads procmap settings from defaults, an optional YAML
// file, PROCMAP_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/procmap/internal/timeline"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PROCMAP_DB.
const EnvPrefix = "PROCMAP"

// Keys understood by Load.
const (
	KeyDB          = "db"
	KeyWindowStart = "window_start"
	KeyVerbose     = "verbose"
)

// LayoutConfig overrides the timeline grid dimensions.
type LayoutConfig struct {
	CellWidth        float64 `mapstructure:"cell_width"`
	CellHeight       float64 `mapstructure:"cell_height"`
	HeaderHeight     float64 `mapstructure:"header_height"`
	LabelColumnWidth float64 `mapstructure:"label_column_width"`
	NodeSize         float64 `mapstructure:"node_size"`
	MinHeight        float64 `mapstructure:"min_height"`
}

// Config holds all runtime configuration.
type Config struct {
	DB          string       `mapstructure:"db"`
	WindowStart string       `mapstructure:"window_start"` // YYYY-MM, empty means current month
	Verbose     bool         `mapstructure:"verbose"`
	Layout      LayoutConfig `mapstructure:"layout"`
}

// Dir returns ~/.procmap.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".procmap"), nil
}

// New returns a viper instance with defaults and environment lookup
// configured. Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	dbPath := "procmap.db"
	if dir, err := Dir(); err == nil {
		dbPath = filepath.Join(dir, "procmap.db")
	}
	layout := timeline.DefaultConfig()

	v.SetDefault(KeyDB, dbPath)
	v.SetDefault(KeyWindowStart, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault("layout.cell_width", layout.CellWidth)
	v.SetDefault("layout.cell_height", layout.CellHeight)
	v.SetDefault("layout.header_height", layout.HeaderHeight)
	v.SetDefault("layout.label_column_width", layout.LabelColumnWidth)
	v.SetDefault("layout.node_size", layout.NodeSize)
	v.SetDefault("layout.min_height", layout.MinHeight)
	return v
}

// BindFlags binds the global flags that share a config key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyDB, KeyVerbose} {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads file if given, otherwise config.yaml from ~/.procmap when it
// exists, and returns the merged configuration.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else if dir, err := Dir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.WindowStart != "" {
		if _, ok := timeline.ParseMonth(cfg.WindowStart); !ok {
			return Config{}, fmt.Errorf("invalid %s %q: use YYYY-MM", KeyWindowStart, cfg.WindowStart)
		}
	}
	cfg.DB = expandHome(cfg.DB)
	return cfg, nil
}

// Timeline converts the layout overrides into grid dimensions.
func (c Config) Timeline() timeline.Config {
	return timeline.Config{
		CellWidth:        c.Layout.CellWidth,
		CellHeight:       c.Layout.CellHeight,
		HeaderHeight:     c.Layout.HeaderHeight,
		LabelColumnWidth: c.Layout.LabelColumnWidth,
		NodeSize:         c.Layout.NodeSize,
		MinHeight:        c.Layout.MinHeight,
	}
}

// Window returns the configured projection window, or the one containing
// now when no start month is set.
func (c Config) Window(now time.Time) timeline.Window {
	if start, ok := timeline.ParseMonth(c.WindowStart); ok {
		return timeline.NewWindow(start)
	}
	return timeline.NewWindow(now)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
