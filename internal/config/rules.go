package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexajuno/pokerithm/pkg/engine"
)

// BlindLevelConfig is one row of a YAML blind schedule.
type BlindLevelConfig struct {
	SmallBlind int `yaml:"small_blind"`
	BigBlind   int `yaml:"big_blind"`
}

// TableConfig is the YAML-loadable description of a tournament: how
// many bots sit with the human, how they're stacked, how fast blinds
// rise, and the difficulty of the bot personalities. It mirrors the
// structure of the game-rules YAML files this engine's ancestor used,
// but describes a tournament rather than a single hand-ranking
// variant.
type TableConfig struct {
	// NumBots is the number of CPU-controlled opponents seated with the
	// human player.
	NumBots int `yaml:"num_bots"`

	// StartingStack is the chip count every player begins the
	// tournament with.
	StartingStack int `yaml:"starting_stack"`

	// HandsPerLevel is the number of hands played before blinds
	// advance to the next schedule entry.
	HandsPerLevel int `yaml:"hands_per_level"`

	// Difficulty selects which personality pool bots are drawn from:
	// "easy", "medium", or "hard".
	Difficulty string `yaml:"difficulty"`

	// BlindSchedule is the ordered list of blind levels. When empty,
	// the engine's default ten-level schedule is used.
	BlindSchedule []BlindLevelConfig `yaml:"blind_schedule"`

	// MaxRaisesPerStreet caps the number of reopening raises allowed on
	// a single street before further raises are downgraded to calls.
	// Zero selects the engine's default.
	MaxRaisesPerStreet int `yaml:"max_raises_per_street"`
}

// LoadTableConfigFromFile reads a YAML file describing a tournament
// table and returns the parsed config.
func LoadTableConfigFromFile(filePath string) (*TableConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg TableConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadTableConfigFromName loads "config/<name>.yml" relative to the
// working directory — the way game rule variants used to be selected
// by a short option string.
func LoadTableConfigFromName(name string) (*TableConfig, error) {
	return LoadTableConfigFromFile(fmt.Sprintf("config/%s.yml", name))
}

// ParsedDifficulty parses the configured difficulty string, defaulting
// to medium for an empty or unrecognized value.
func (c *TableConfig) ParsedDifficulty() engine.Difficulty {
	switch c.Difficulty {
	case "easy":
		return engine.DifficultyEasy
	case "hard":
		return engine.DifficultyHard
	default:
		return engine.DifficultyMedium
	}
}

// ToEngineConfig builds an engine.TournamentConfig from the YAML
// config, substituting engine defaults for anything left unset.
func (c *TableConfig) ToEngineConfig() engine.TournamentConfig {
	cfg := engine.TournamentConfig{
		StartingStack:      c.StartingStack,
		HandsPerLevel:      c.HandsPerLevel,
		MaxRaisesPerStreet: c.MaxRaisesPerStreet,
	}
	if cfg.StartingStack == 0 {
		cfg.StartingStack = engine.DefaultStartingStack
	}
	for _, lvl := range c.BlindSchedule {
		cfg.BlindSchedule = append(cfg.BlindSchedule, engine.BlindLevel{
			SmallBlind: lvl.SmallBlind,
			BigBlind:   lvl.BigBlind,
		})
	}
	return cfg
}
