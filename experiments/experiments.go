package experiments

import (
	"context"
	"fmt"
	"sort"
	"spacewars/config"
	"spacewars/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Runner is one named experiment.
type Runner func(ctx context.Context, cfg config.Config) error

// All lists the experiments selectable by name.
var All = map[string]Runner{
	"baseline":        RunBaselineExperiment,
	"parallelization": RunParallelizationExperiment,
	"cutoff":          RunCutoffExperiment,
	"throughput":      RunThroughputExperiment,
}

// Names returns the experiment names in a stable order.
func Names() []string {
	names := make([]string, 0, len(All))
	for name := range All {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunBaselineExperiment pits the configured search against uniformly random play.
func RunBaselineExperiment(ctx context.Context, cfg config.Config) error {
	search := AgentConfigFor(cfg, config.MCTSAI, 1)
	random := AgentConfigFor(cfg, config.RandomAI, 2)
	matchUps := [][]metrics.AgentConfig{
		{search, random},
		{random, search},
	}

	return runExperiment(ctx, cfg, "baseline", []metrics.AgentConfig{search, random}, matchUps)
}

func RunParallelizationExperiment(ctx context.Context, cfg config.Config) error {
	// Each matchup pairs an agent against the baseline sequential agent
	baseline := AgentConfigFor(cfg, config.MCTSAI, 0)
	baseline.Goroutines = 1
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range []int{2, 4, 8} {
		ac := baseline
		ac.ID = i + 1
		ac.Goroutines = goroutines
		configs = append(configs, ac)
		matchUps = append(matchUps, []metrics.AgentConfig{ac, baseline})
	}

	return runExperiment(ctx, cfg, "parallelization", configs, matchUps)
}

func RunCutoffExperiment(ctx context.Context, cfg config.Config) error {
	// Each matchup pairs a cutoff agent against the configured horizon
	baseline := AgentConfigFor(cfg, config.MCTSAI, 0)
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, cutoff := range []int{10, 25, 100} {
		ac := baseline
		ac.ID = i + 1
		ac.Cutoff = cutoff
		configs = append(configs, ac)
		matchUps = append(matchUps, []metrics.AgentConfig{ac, baseline})
	}

	return runExperiment(ctx, cfg, "cutoff", configs, matchUps)
}

func runExperiment(ctx context.Context, cfg config.Config, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) error {
	numGames := cfg.Experiments.NumGames

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		human := matchup[0]
		alien := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between human=%+v and alien=%+v...", mi+1, len(matchUps), human, alien)

		for i := 0; i < numGames; i++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%s experiment interrupted: %w", name, err)
			}
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, numGames)

			count++
			winner, gameMetric, moveMetrics, err := PlayGame(ctx, cfg, human, alien, cfg.Search.Seed+uint64(count))
			if err != nil {
				return fmt.Errorf("failed to play game %d: %w", count, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Human:      human.ID,
				Alien:      alien.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	return writeResults(cfg.Experiments.OutputDir, name, configs, gameRecords, moveRecords)
}

func writeResults(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}
