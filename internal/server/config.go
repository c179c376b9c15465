package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableConfig    `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines the heads-up table
type TableConfig struct {
	SmallBlind         int   `hcl:"small_blind"`
	BigBlind           int   `hcl:"big_blind"`
	StartingChips      int   `hcl:"starting_chips,optional"`
	TurnTimeoutSeconds int   `hcl:"turn_timeout_seconds,optional"`
	HandDelaySeconds   int   `hcl:"hand_delay_seconds,optional"`
	Seed               int64 `hcl:"seed,optional"` // 0 selects a random seed
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableConfig{
			SmallBlind:         5,
			BigBlind:           10,
			StartingChips:      1000,
			TurnTimeoutSeconds: 30,
			HandDelaySeconds:   3,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
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

	applyDefaults(&config)
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Table.StartingChips == 0 {
		config.Table.StartingChips = config.Table.BigBlind * 100
	}
	if config.Table.TurnTimeoutSeconds == 0 {
		config.Table.TurnTimeoutSeconds = defaults.Table.TurnTimeoutSeconds
	}
	if config.Table.HandDelaySeconds == 0 {
		config.Table.HandDelaySeconds = defaults.Table.HandDelaySeconds
	}
}

func validate(config *Config) error {
	t := config.Table
	if t.SmallBlind <= 0 || t.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive, got %d/%d", t.SmallBlind, t.BigBlind)
	}
	if t.SmallBlind > t.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", t.SmallBlind, t.BigBlind)
	}
	if t.StartingChips < t.BigBlind {
		return fmt.Errorf("starting chips %d below the big blind %d", t.StartingChips, t.BigBlind)
	}
	return nil
}
