// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScanPaths     []string      `toml:"scan_paths"`
	DefaultModule string        `toml:"default_module"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce      time.Duration `toml:"debounce"`
	RescansPerSec float64       `toml:"rescans_per_sec"`
	RescanBurst   int           `toml:"rescan_burst"`
}

type Output struct {
	Catalog   string `toml:"catalog"`
	Fragments string `toml:"fragments"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	ListenAddr   string `toml:"listen_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RescansPerSec == 0 {
		cfg.Watch.RescansPerSec = 2
	}
	if cfg.Watch.RescanBurst == 0 {
		cfg.Watch.RescanBurst = 4
	}
	if cfg.Output.Catalog == "" {
		cfg.Output.Catalog = "pystub-catalog.json"
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "target"}
	}
}
