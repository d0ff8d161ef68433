// Package config loads runtime configuration for the CyberVault CLI.
//
// Sources, later ones winning: built-in defaults, the JSON file named by
// -c/-config, then command-line flags.
//
//	-a string   address:port of the server gRPC endpoint
//	-t int      per-call timeout in seconds
//	-d string   local cache database ("" disables the cache)
package config

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/cybervault/internal/flagx"
)

type Config struct {
	ServerEndpointAddr string
	CallTimeout        time.Duration
	CachePath          string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:59999"
	c.CallTimeout = 30 * time.Second
	c.CachePath = defaultCachePath()
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cybervault", "cache.db")
}

// LoadConfig parses args (without the program name) and returns the config
// and the remaining positional arguments: the command and its operands.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, nil, err
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("cybervault-cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.CallTimeout.Seconds()), "call timeout (in seconds)")
	fs.StringVar(&cfg.CachePath, "d", cfg.CachePath, "local cache database")
	fs.String("c", "", "json config file")
	fs.String("config", "", "json config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.CallTimeout = time.Duration(*timeout) * time.Second
	return fs.Args(), nil
}
