package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(env(map[string]string{EnvAPIURL: "http://localhost:3000/api"}))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultSnapshotPath, cfg.SnapshotPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Len(t, cfg.ClientOptions(), 1, "no authenticator without a token")
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(env(map[string]string{
		EnvAPIURL:       "https://condo.example/api",
		EnvAPIToken:     "secret",
		EnvAPITimeout:   "5s",
		EnvWorkers:      "2",
		EnvDatabaseURL:  "postgres://condo@localhost/condo",
		EnvSnapshotPath: "/tmp/snap.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "postgres://condo@localhost/condo", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/snap.db", cfg.SnapshotPath)
	assert.Len(t, cfg.ClientOptions(), 2)
}

func TestFromLookup_Errors(t *testing.T) {
	_, err := FromLookup(env(nil))
	assert.EqualError(t, err, "CONDO_API_URL not set in environment or .env file")

	cases := map[string]map[string]string{
		"bad timeout":      {EnvAPIURL: "http://x/api", EnvAPITimeout: "soon"},
		"negative timeout": {EnvAPIURL: "http://x/api", EnvAPITimeout: "-1s"},
		"bad workers":      {EnvAPIURL: "http://x/api", EnvWorkers: "many"},
		"zero workers":     {EnvAPIURL: "http://x/api", EnvWorkers: "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(env(vars))
			assert.Error(t, err)
		})
	}
}

func TestSnapshotFromLookup(t *testing.T) {
	cfg := SnapshotFromLookup(env(nil))
	assert.Equal(t, DefaultSnapshotPath, cfg.SnapshotPath)
	assert.Empty(t, cfg.APIURL)

	cfg = SnapshotFromLookup(env(map[string]string{EnvDatabaseURL: " postgres://db/condo "}))
	assert.Equal(t, "postgres://db/condo", cfg.DatabaseURL)
}
