package agent

import (
	"context"
	"spacewars/experiments/metrics"
	"spacewars/game"
	"spacewars/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state *game.GameState, id game.ShipID) (game.Move, bool, metrics.SearchMetric) {
	return a.mcts.Simulate(ctx, state, id)
}
