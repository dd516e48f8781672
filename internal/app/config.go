package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete shopctl configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	APIURL    string        `usage:"Storefront API root (SHOP_API_URL or API_URL)" flag:"api-url"`
	StateDir  string        `usage:"Directory for cart and session snapshots" flag:"state-dir"`
	Timeout   time.Duration `default:"30s" usage:"Per-request timeout"`
	AddressID string        `default:"" usage:"Preferred saved address for checkout prefill" flag:"address-id"`
	Redis     RedisConfig
}

// RedisConfig switches snapshot storage from local files to a shared Redis
// when Addr is set.
type RedisConfig struct {
	Addr  string `default:"" usage:"Redis address; empty keeps file snapshots" flag:"redis-addr"`
	DB    int    `default:"0" usage:"Redis database number" flag:"redis-db"`
	Owner string `default:"" usage:"Snapshot owner key, defaults to $USER" flag:"redis-owner"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shopctl/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.APIURL == "" {
		return nil, errors.New("API URL is required: set SHOP_API_URL or API_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps standard environment names like API_URL onto
// the SHOP_-prefixed configuration and derives the remaining defaults.
func (c *Config) applyPlatformDefaults() {
	if c.APIURL == "" {
		if v := os.Getenv("API_URL"); v != "" {
			c.APIURL = v
		}
	}
	if c.StateDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.StateDir = filepath.Join(home, ".shopctl")
		} else {
			c.StateDir = ".shopctl"
		}
	}
	if c.Redis.Addr != "" && c.Redis.Owner == "" {
		c.Redis.Owner = os.Getenv("USER")
		if c.Redis.Owner == "" {
			c.Redis.Owner = "default"
		}
	}
}
