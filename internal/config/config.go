// Package config reads console settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beesaferoot/condo-console/internal/api"
)

const (
	EnvAPIURL       = "CONDO_API_URL"
	EnvAPIToken     = "CONDO_API_TOKEN"
	EnvAPITimeout   = "CONDO_API_TIMEOUT"
	EnvWorkers      = "CONDO_WORKERS"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvSnapshotPath = "SNAPSHOT_SQLITE_PATH"

	DefaultSnapshotPath = "condo-snapshots.db"
	DefaultWorkers      = 4
)

type Config struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration
	Workers  int

	// DatabaseURL selects a postgres snapshot database; when empty snapshots
	// go to the sqlite file at SnapshotPath.
	DatabaseURL  string
	SnapshotPath string
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup, which has the
// signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := SnapshotFromLookup(lookup)
	cfg.APIURL = get(EnvAPIURL)
	cfg.APIToken = get(EnvAPIToken)
	cfg.Timeout = api.DefaultTimeout
	cfg.Workers = DefaultWorkers
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("%s not set in environment or .env file", EnvAPIURL)
	}

	if raw := get(EnvAPITimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", EnvAPITimeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", EnvAPITimeout)
		}
		cfg.Timeout = d
	}

	if raw := get(EnvWorkers); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s: %q is not a positive integer", EnvWorkers, raw)
		}
		cfg.Workers = n
	}

	return cfg, nil
}

// LoadSnapshot reads only the snapshot database settings, for commands that
// never talk to the API.
func LoadSnapshot() *Config {
	return SnapshotFromLookup(os.LookupEnv)
}

func SnapshotFromLookup(lookup func(string) (string, bool)) *Config {
	dbURL, _ := lookup(EnvDatabaseURL)
	path, _ := lookup(EnvSnapshotPath)
	cfg := &Config{
		DatabaseURL:  strings.TrimSpace(dbURL),
		SnapshotPath: strings.TrimSpace(path),
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = DefaultSnapshotPath
	}
	return cfg
}

// ClientOptions returns the api options implied by the configuration.
func (c *Config) ClientOptions() []api.Option {
	opts := []api.Option{api.WithTimeout(c.Timeout)}
	if c.APIToken != "" {
		opts = append(opts, api.WithAuthenticator(api.BearerToken(c.APIToken)))
	}
	return opts
}
