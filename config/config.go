package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"spacewars/game"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SPACEWARS_SEARCH_EPISODES.
const EnvPrefix = "SPACEWARS"

// WorldConfig holds the battlefield settings.
type WorldConfig struct {
	Height     int    `json:"height" mapstructure:"height"`
	Width      int    `json:"width" mapstructure:"width"`
	CellSize   int    `json:"cellSize" mapstructure:"cellSize"`
	Ships      int    `json:"ships" mapstructure:"ships"` // Per team
	Collisions string `json:"collisions" mapstructure:"collisions"`
}

// SearchConfig holds the MCTS budget and tuning.
type SearchConfig struct {
	Goroutines  int           `json:"goroutines" mapstructure:"goroutines"`
	Episodes    int           `json:"episodes" mapstructure:"episodes"`
	Duration    time.Duration `json:"duration" mapstructure:"duration"`
	Cutoff      int           `json:"cutoff" mapstructure:"cutoff"`
	Temperature float64       `json:"temperature" mapstructure:"temperature"`
	Seed        uint64        `json:"seed" mapstructure:"seed"`
}

// GameConfig selects the agents and the length of a match.
type GameConfig struct {
	MaxTicks   int    `json:"maxTicks" mapstructure:"maxTicks"`
	HumanAI    string `json:"humanAI" mapstructure:"humanAI"`
	AlienAI    string `json:"alienAI" mapstructure:"alienAI"`
	Discounted bool   `json:"discounted" mapstructure:"discounted"`
}

type ReplayConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

type ExperimentsConfig struct {
	NumGames  int    `json:"numGames" mapstructure:"numGames"`
	OutputDir string `json:"outputDir" mapstructure:"outputDir"`
}

type Config struct {
	LogLevel    string            `json:"logLevel" mapstructure:"logLevel"`
	World       WorldConfig       `json:"world" mapstructure:"world"`
	Search      SearchConfig      `json:"search" mapstructure:"search"`
	Game        GameConfig        `json:"game" mapstructure:"game"`
	Replay      ReplayConfig      `json:"replay" mapstructure:"replay"`
	Experiments ExperimentsConfig `json:"experiments" mapstructure:"experiments"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("world.height", 600)
	v.SetDefault("world.width", 800)
	v.SetDefault("world.cellSize", 40)
	v.SetDefault("world.ships", 20)
	v.SetDefault("world.collisions", "enemyOnly")

	v.SetDefault("search.goroutines", 1)
	v.SetDefault("search.episodes", 150)
	v.SetDefault("search.duration", "0s")
	v.SetDefault("search.cutoff", 50)
	v.SetDefault("search.temperature", math.Sqrt2)
	v.SetDefault("search.seed", 1)

	v.SetDefault("game.maxTicks", 1000)
	v.SetDefault("game.humanAI", "mcts")
	v.SetDefault("game.alienAI", "random")
	v.SetDefault("game.discounted", true)

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.path", "replays/replay.json")

	v.SetDefault("experiments.numGames", 10)
	v.SetDefault("experiments.outputDir", "experiments")
}

// Load reads an optional JSON or YAML config file on top of the defaults, then
// applies SPACEWARS_ environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no game can be built from.
func (c Config) Validate() error {
	var errs []error
	if c.World.CellSize <= 0 {
		errs = append(errs, errors.New("world.cellSize must be positive"))
	}
	if c.World.Height < c.World.CellSize || c.World.Width < c.World.CellSize {
		errs = append(errs, errors.New("world must be at least one cell high and wide"))
	}
	if c.World.Ships < 0 {
		errs = append(errs, errors.New("world.ships cannot be negative"))
	}
	if _, err := game.ParseCollisionSetting(c.World.Collisions); err != nil {
		errs = append(errs, err)
	}
	if c.Search.Episodes <= 0 && c.Search.Duration <= 0 {
		errs = append(errs, errors.New("search needs episodes or a duration"))
	}
	for _, ai := range []string{c.Game.HumanAI, c.Game.AlienAI} {
		if !IsKnownAI(ai) {
			errs = append(errs, fmt.Errorf("unknown AI %q", ai))
		}
	}
	return errors.Join(errs...)
}

// AI names accepted by game.humanAI and game.alienAI.
const (
	MCTSAI     = "mcts"
	RandomAI   = "random"
	TrainingAI = "training"
	NaiveAI    = "naive"
)

func IsKnownAI(name string) bool {
	return name == MCTSAI || name == RandomAI || name == TrainingAI || name == NaiveAI
}

// GameWorld converts the world section into the settings of a game world.
func (c Config) GameWorld() (game.WorldConfig, error) {
	collisions, err := game.ParseCollisionSetting(c.World.Collisions)
	if err != nil {
		return game.WorldConfig{}, err
	}
	return game.WorldConfig{
		Height:     c.World.Height,
		Width:      c.World.Width,
		CellSize:   c.World.CellSize,
		Collisions: collisions,
		Rules:      game.NewStandardRules(),
	}, nil
}
