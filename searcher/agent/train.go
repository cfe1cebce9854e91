package agent

import (
	"context"
	"math"
	"sort"
	"spacewars/experiments/metrics"
	"spacewars/game"
	"spacewars/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples moves in proportion to their
// search visits, for self-play games with more varied trajectories.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1
	}
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent) FindMove(ctx context.Context, state *game.GameState, id game.ShipID) (game.Move, bool, metrics.SearchMetric) {
	policy, metric := a.mcts.Policy(ctx, state, id)
	if len(policy) == 0 {
		return game.Move{}, false, metric
	}
	moves, probs := adjustTemperature(policy, a.temperature)
	return sample(moves, probs, a.rng.Float64()), true, metric
}

// adjustTemperature turns visit counts into probabilities proportional to
// visits^(1/temperature), in a fixed move order.
func adjustTemperature(policy map[game.Move]float64, temperature float64) ([]game.Move, []float64) {
	moves := make([]game.Move, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Target.Row != b.Target.Row {
			return a.Target.Row < b.Target.Row
		}
		return a.Target.Col < b.Target.Col
	})

	exponent := 1.0 / temperature
	sum := 0.0
	probs := make([]float64, len(moves))
	for i, move := range moves {
		probs[i] = math.Pow(policy[move], exponent)
		sum += probs[i]
	}
	// Normalize
	for i := range probs {
		probs[i] /= sum
	}
	return moves, probs
}

func sample(moves []game.Move, probs []float64, sampled float64) game.Move {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return moves[i]
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
