package experiments

import (
	"context"
	"fmt"
	"spacewars/config"
	"spacewars/engine"
	"spacewars/experiments/metrics"
	"spacewars/game"
	"spacewars/searcher"
	"spacewars/searcher/agent"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

// AgentConfigFor builds an agent config from the search section of cfg.
func AgentConfigFor(cfg config.Config, ai string, id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		AI:          ai,
		Goroutines:  cfg.Search.Goroutines,
		Duration:    cfg.Search.Duration,
		Episodes:    cfg.Search.Episodes,
		Cutoff:      cfg.Search.Cutoff,
		Temperature: cfg.Search.Temperature,
	}
}

// NewGame places cfg.World.Ships ships per team on a fresh battlefield.
func NewGame(cfg config.Config) (*game.GameState, error) {
	world, err := cfg.GameWorld()
	if err != nil {
		return nil, fmt.Errorf("invalid world config: %w", err)
	}
	humans := make([]game.ShipSpec, cfg.World.Ships)
	aliens := make([]game.ShipSpec, cfg.World.Ships)
	for i := 0; i < cfg.World.Ships; i++ {
		humans[i] = game.ShipSpec{Name: fmt.Sprintf("human%d", i+1), Discounted: cfg.Game.Discounted}
		aliens[i] = game.ShipSpec{Name: fmt.Sprintf("alien%d", i+1), Discounted: cfg.Game.Discounted}
	}
	state, err := game.NewGame(world, humans, aliens)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return state, nil
}

// NewAgents gives every ship its own agent. Seeds are derived from seed and the
// ship id so that games are reproducible.
func NewAgents(state *game.GameState, human, alien metrics.AgentConfig, seed uint64) []agent.Agent {
	agents := make([]agent.Agent, state.NumShips())
	for i := range agents {
		id := game.ShipID(i)
		ac := human
		if state.Ship(id).Team == game.Alien {
			ac = alien
		}
		agents[i] = createAgent(ac, seed+uint64(i)*7919)
	}
	return agents
}

// PlayGame runs one game between two agent configs.
func PlayGame(ctx context.Context, cfg config.Config, human, alien metrics.AgentConfig, seed uint64, observers ...engine.Observer) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := NewGame(cfg)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agents := NewAgents(state, human, alien, seed)
	e := engine.LocalEngine(state, agents, engine.WithMaxTicks(cfg.Game.MaxTicks), engine.WithObservers(observers...))

	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(ac metrics.AgentConfig, seed uint64) agent.Agent {
	switch ac.AI {
	case config.RandomAI:
		return agent.NewRandomAgent(seed)
	case config.NaiveAI:
		return agent.NewNaiveAgent(seed)
	case config.TrainingAI:
		return agent.NewTrainingAgent(createMCTS(ac, seed), 1, seed^0x9e3779b97f4a7c15)
	default:
		return agent.NewEvaluationAgent(createMCTS(ac, seed))
	}
}

func createMCTS(ac metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(seed)}

	if ac.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(ac.Episodes))
	}
	if ac.Duration > 0 {
		options = append(options, searcher.WithDuration(ac.Duration))
	}
	if ac.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(ac.Cutoff))
	}
	if ac.Temperature > 0 {
		options = append(options, searcher.WithTemperature(ac.Temperature))
	}

	options = append(options, searcher.WithMetrics(newCollector()))
	return searcher.NewMCTS(ac.Goroutines, options...)
}

// newCollector reports search counters to the global meter provider, which does
// nothing unless one was installed.
func newCollector() metrics.Collector {
	collector, err := metrics.NewOTelCollector(otel.Meter(metrics.MeterName))
	if err != nil {
		log.Warn().Err(err).Msg("falling back to local search metrics")
		return metrics.NewCollector()
	}
	return collector
}
