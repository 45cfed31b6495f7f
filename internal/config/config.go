// Package config loads trainer configuration from HCL files. A missing file
// yields the defaults, so the binary runs with no setup at all.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete trainer configuration.
type Config struct {
	Table  TableSettings `hcl:"table,block"`
	Blinds BlindSettings `hcl:"blinds,block"`
	AI     AISettings    `hcl:"ai,block"`
}

// TableSettings controls the seating at hand zero.
type TableSettings struct {
	Seats     int `hcl:"seats,optional"`
	Stack     int `hcl:"stack,optional"`
	HumanSeat int `hcl:"human_seat,optional"`
}

// BlindSettings controls the escalation schedule. Levels apply in order,
// the last one repeating once the schedule is exhausted.
type BlindSettings struct {
	HandsPerLevel int     `hcl:"hands_per_level,optional"`
	Levels        []Level `hcl:"level,block"`
}

// Level is one rung of the blind schedule.
type Level struct {
	Small int `hcl:"small"`
	Big   int `hcl:"big"`
}

// AISettings tunes the computer opponents.
type AISettings struct {
	Aggression     float64 `hcl:"aggression,optional"`
	BluffFrequency float64 `hcl:"bluff_frequency,optional"`
	MinThinkMillis int     `hcl:"min_think_ms,optional"`
	MaxThinkMillis int     `hcl:"max_think_ms,optional"`
}

// Default returns the out-of-the-box configuration: a 6-max table with
// 1000-chip stacks and a gentle blind escalation.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Seats:     6,
			Stack:     1000,
			HumanSeat: 0,
		},
		Blinds: BlindSettings{
			HandsPerLevel: 10,
			Levels: []Level{
				{Small: 25, Big: 50},
				{Small: 50, Big: 100},
				{Small: 100, Big: 200},
				{Small: 200, Big: 400},
			},
		},
		AI: AISettings{
			Aggression:     1.0,
			BluffFrequency: 0.08,
			MinThinkMillis: 400,
			MaxThinkMillis: 1600,
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults for
// the whole file when it does not exist and per-field when blocks omit
// values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default()

	if cfg.Table.Seats == 0 {
		cfg.Table.Seats = defaults.Table.Seats
	}
	if cfg.Table.Stack == 0 {
		cfg.Table.Stack = defaults.Table.Stack
	}

	if cfg.Blinds.HandsPerLevel == 0 {
		cfg.Blinds.HandsPerLevel = defaults.Blinds.HandsPerLevel
	}
	if len(cfg.Blinds.Levels) == 0 {
		cfg.Blinds.Levels = defaults.Blinds.Levels
	}

	if cfg.AI.Aggression == 0 {
		cfg.AI.Aggression = defaults.AI.Aggression
	}
	if cfg.AI.BluffFrequency == 0 {
		cfg.AI.BluffFrequency = defaults.AI.BluffFrequency
	}
	if cfg.AI.MinThinkMillis == 0 {
		cfg.AI.MinThinkMillis = defaults.AI.MinThinkMillis
	}
	if cfg.AI.MaxThinkMillis == 0 {
		cfg.AI.MaxThinkMillis = defaults.AI.MaxThinkMillis
	}

	return &cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Table.Seats < 2 || c.Table.Seats > 8 {
		return fmt.Errorf("seats must be between 2 and 8, got %d", c.Table.Seats)
	}

	if c.Table.Stack <= 0 {
		return fmt.Errorf("stack must be positive, got %d", c.Table.Stack)
	}

	if c.Table.HumanSeat < 0 || c.Table.HumanSeat >= c.Table.Seats {
		return fmt.Errorf("human_seat %d out of range for %d seats", c.Table.HumanSeat, c.Table.Seats)
	}

	if c.Blinds.HandsPerLevel <= 0 {
		return fmt.Errorf("hands_per_level must be positive")
	}

	for i, lvl := range c.Blinds.Levels {
		if lvl.Small <= 0 || lvl.Big <= 0 {
			return fmt.Errorf("level %d: blinds must be positive", i+1)
		}
		if lvl.Big < lvl.Small {
			return fmt.Errorf("level %d: big blind %d smaller than small blind %d", i+1, lvl.Big, lvl.Small)
		}
	}

	if c.AI.Aggression <= 0 {
		return fmt.Errorf("aggression must be positive")
	}

	if c.AI.BluffFrequency < 0 || c.AI.BluffFrequency > 1 {
		return fmt.Errorf("bluff_frequency must be between 0 and 1")
	}

	if c.AI.MinThinkMillis < 0 {
		return fmt.Errorf("min_think_ms cannot be negative")
	}

	if c.AI.MaxThinkMillis < c.AI.MinThinkMillis {
		return fmt.Errorf("max_think_ms %d smaller than min_think_ms %d",
			c.AI.MaxThinkMillis, c.AI.MinThinkMillis)
	}

	return nil
}
