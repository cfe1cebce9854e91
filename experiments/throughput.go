package experiments

import (
	"context"
	"spacewars/config"
	"spacewars/experiments/metrics"
	"time"
)

// ThroughputBudget is the per-move search time of the throughput experiment.
const ThroughputBudget = 10 * time.Millisecond

// RunThroughputExperiment measures episodes per move on a fixed time budget.
// Same config for both teams in each game for the same playing strength and
// similar game length.
func RunThroughputExperiment(ctx context.Context, cfg config.Config) error {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16} {
		ac := AgentConfigFor(cfg, config.MCTSAI, i+1)
		ac.Goroutines = goroutines
		ac.Episodes = 0
		ac.Duration = ThroughputBudget
		configs = append(configs, ac)
		matchUps = append(matchUps, []metrics.AgentConfig{ac, ac})
	}

	return runExperiment(ctx, cfg, "throughput", configs, matchUps)
}
