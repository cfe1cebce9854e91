package agent

import (
	"context"
	"spacewars/experiments/metrics"
	"spacewars/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, state *game.GameState, id game.ShipID) (game.Move, bool, metrics.SearchMetric) {
	moves := state.LegalMoves(id)
	if len(moves) == 0 {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], true, metrics.SearchMetric{Candidates: len(moves)}
}
