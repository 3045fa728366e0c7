package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem/internal/bot"
)

// Config represents the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines one hosted table. The game starts as soon as every
// seat is taken.
type TableConfig struct {
	Name          string `hcl:"name,label"`
	MaxPlayers    int    `hcl:"max_players,optional"`
	BigBlind      int    `hcl:"big_blind"`
	BuyIn         int    `hcl:"buy_in,optional"`
	ActionTimeout int    `hcl:"action_timeout,optional"` // seconds; 0 disables
}

// BotConfig seats a house bot at one or more tables.
type BotConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy"`
	Tables   []string `hcl:"tables,optional"`
}

// DefaultConfig returns the configuration used when no file is present: one
// six-seat table with a couple of house bots to play against.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:          "main",
				MaxPlayers:    6,
				BigBlind:      10,
				ActionTimeout: 30,
			},
		},
		Bots: []BotConfig{
			{Name: "caller-1", Strategy: "caller", Tables: []string{"main"}},
			{Name: "sixmax-1", Strategy: "sixmax", Tables: []string{"main"}},
		},
	}
}

// LoadConfig loads server configuration from an HCL file, falling back to
// the defaults when the file doesn't exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	for i := range c.Tables {
		if c.Tables[i].MaxPlayers == 0 {
			c.Tables[i].MaxPlayers = 6
		}
		if c.Tables[i].BuyIn == 0 {
			c.Tables[i].BuyIn = c.Tables[i].BigBlind * 100
		}
	}

	for i := range c.Bots {
		if len(c.Bots[i].Tables) == 0 {
			// No tables specified, seat at every table.
			for _, table := range c.Tables {
				c.Bots[i].Tables = append(c.Bots[i].Tables, table.Name)
			}
		}
	}
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	names := make(map[string]bool)
	for _, table := range c.Tables {
		if names[table.Name] {
			return fmt.Errorf("duplicate table name %q", table.Name)
		}
		names[table.Name] = true

		if table.BigBlind < 2 {
			return fmt.Errorf("table %s: big blind must be at least 2", table.Name)
		}
		if table.MaxPlayers < 2 || table.MaxPlayers > 10 {
			return fmt.Errorf("table %s: max players must be between 2 and 10", table.Name)
		}
		if bots := len(c.BotsForTable(table.Name)); bots >= table.MaxPlayers {
			return fmt.Errorf("table %s: %d bots leave no seat for a player", table.Name, bots)
		}
	}

	valid := make(map[string]bool)
	for _, s := range bot.Strategies() {
		valid[s] = true
	}
	for _, b := range c.Bots {
		if !valid[b.Strategy] {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		for _, t := range b.Tables {
			if !names[t] {
				return fmt.Errorf("bot %s: unknown table %s", b.Name, t)
			}
		}
	}

	return nil
}

// ListenAddress returns the host:port the server binds.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// BotsForTable returns the bots configured to sit at the named table.
func (c *Config) BotsForTable(name string) []BotConfig {
	var bots []BotConfig
	for _, b := range c.Bots {
		for _, t := range b.Tables {
			if t == name {
				bots = append(bots, b)
				break
			}
		}
	}
	return bots
}
