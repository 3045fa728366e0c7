package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address = "0.0.0.0"
  port    = 9000
}

table "highstakes" {
  big_blind   = 100
  max_players = 4
}

bot "house" {
  strategy = "sixmax"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddress())

	require.Len(t, cfg.Tables, 1)
	table := cfg.Tables[0]
	assert.Equal(t, "highstakes", table.Name)
	assert.Equal(t, 100, table.BigBlind)
	assert.Equal(t, 4, table.MaxPlayers)
	assert.Equal(t, 10000, table.BuyIn, "buy-in defaults to 100 big blinds")

	// Bot with no tables listed is seated everywhere.
	bots := cfg.BotsForTable("highstakes")
	require.Len(t, bots, 1)
	assert.Equal(t, "house", bots[0].Name)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	assert.NotEmpty(t, cfg.Tables)
}

func TestLoadConfigRejectsMalformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `table "broken" {`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		cfg := DefaultConfig()
		cfg.applyDefaults()
		return cfg
	}

	t.Run("valid defaults", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := base()
		cfg.Bots[0].Strategy = "solver"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bot at unknown table", func(t *testing.T) {
		cfg := base()
		cfg.Bots[0].Tables = []string{"phantom"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("no tables", func(t *testing.T) {
		cfg := base()
		cfg.Tables = nil
		cfg.Bots = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("bots fill every seat", func(t *testing.T) {
		cfg := base()
		cfg.Tables[0].MaxPlayers = 2
		assert.Error(t, cfg.Validate())
	})

	t.Run("too small blind", func(t *testing.T) {
		cfg := base()
		cfg.Tables[0].BigBlind = 1
		assert.Error(t, cfg.Validate())
	})
}
