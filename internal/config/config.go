// Package config is the configuration shared by the server and the cli.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"hibid-backend/internal/components/telemetry"
	"hibid-backend/internal/scrapers/hibid"
	"hibid-backend/lib/configutil"
)

type ApiConfig struct {
	// highest accepted value of the list endpoint's page parameter
	MaxPage int `json:"max_page"`
}

type Config struct {
	Port    int  `json:"port"`
	Verbose bool `json:"verbose"`
	// when set, every http exchange with hibid is written to this directory
	DumpDir   string           `json:"dump_dir"`
	Api       ApiConfig        `json:"api"`
	Scraper   hibid.Options    `json:"scraper"`
	Telemetry telemetry.Config `json:"telemetry"`
}

func Default() Config {
	return Config{
		Port: 8000,
		Api: ApiConfig{
			MaxPage: 31,
		},
		Scraper: hibid.DefaultOptions(),
	}
}

// Load reads the config file at path (a missing file means defaults), then
// applies the environment. A .env file in the working directory is loaded
// first if present.
//
// env overrides:
//   - PORT
//   - HIBID_VERBOSE
//   - HIBID_DUMP_DIR
func Load(path string) (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := configutil.ReadConfigWithDefaults(path, Default())
	if err != nil {
		return Config{}, err
	}
	err = cfg.applyEnv(os.LookupEnv)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	port, ok := lookup("PORT")
	if ok && strings.TrimSpace(port) != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(port), ":"))
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("invalid PORT %q", port)
		}
		c.Port = n
	}

	verbose, ok := lookup("HIBID_VERBOSE")
	if ok && strings.TrimSpace(verbose) != "" {
		v, err := strconv.ParseBool(strings.TrimSpace(verbose))
		if err != nil {
			return fmt.Errorf("invalid HIBID_VERBOSE %q: %w", verbose, err)
		}
		c.Verbose = v
	}

	dumpDir, ok := lookup("HIBID_DUMP_DIR")
	if ok {
		c.DumpDir = strings.TrimSpace(dumpDir)
	}
	return nil
}
