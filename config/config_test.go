package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"spacewars/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 600, cfg.World.Height)
	assert.Equal(t, 800, cfg.World.Width)
	assert.Equal(t, 40, cfg.World.CellSize)
	assert.Equal(t, 20, cfg.World.Ships)
	assert.Equal(t, "enemyOnly", cfg.World.Collisions)
	assert.Equal(t, 1, cfg.Search.Goroutines)
	assert.Equal(t, 150, cfg.Search.Episodes)
	assert.Equal(t, time.Duration(0), cfg.Search.Duration)
	assert.Equal(t, 50, cfg.Search.Cutoff)
	assert.InDelta(t, math.Sqrt2, cfg.Search.Temperature, 1e-12)
	assert.Equal(t, uint64(1), cfg.Search.Seed)
	assert.Equal(t, 1000, cfg.Game.MaxTicks)
	assert.Equal(t, MCTSAI, cfg.Game.HumanAI)
	assert.Equal(t, RandomAI, cfg.Game.AlienAI)
	assert.True(t, cfg.Game.Discounted)
	assert.True(t, cfg.Replay.Enabled)
	assert.Equal(t, "replays/replay.json", cfg.Replay.Path)
	assert.Equal(t, 10, cfg.Experiments.NumGames)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := `{
		"logLevel": "debug",
		"world": { "ships": 5, "collisions": "all" },
		"search": { "episodes": 40, "duration": "250ms", "goroutines": 4 },
		"game": { "alienAI": "mcts" }
	}`
	path := filepath.Join(dir, "spacewars.json")
	require.NoError(t, os.WriteFile(path, []byte(file), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.World.Ships)
	assert.Equal(t, "all", cfg.World.Collisions)
	assert.Equal(t, 40, cfg.Search.Episodes)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Duration)
	assert.Equal(t, 4, cfg.Search.Goroutines)
	assert.Equal(t, MCTSAI, cfg.Game.AlienAI)
	assert.Equal(t, 600, cfg.World.Height, "Unset keys keep their defaults")
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spacewars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  cutoff: 25\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Search.Cutoff)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SPACEWARS_SEARCH_EPISODES", "77")
	t.Setenv("SPACEWARS_GAME_HUMANAI", "training")
	t.Setenv("SPACEWARS_GAME_ALIENAI", "naive")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 77, cfg.Search.Episodes)
	assert.Equal(t, TrainingAI, cfg.Game.HumanAI)
	assert.Equal(t, NaiveAI, cfg.Game.AlienAI)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/spacewars.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spacewars.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"world": {"collisions": "sometimes"}, "game": {"humanAI": "oracle"}}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collision setting")
	assert.Contains(t, err.Error(), `unknown AI "oracle"`)
}

func TestGameWorld(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	w, err := cfg.GameWorld()
	require.NoError(t, err)

	assert.Equal(t, game.EnemyOnly, w.Collisions)
	assert.Equal(t, 40, w.CellSize)
	assert.Equal(t, game.NewStandardRules(), w.Rules)
}
