package agent

import (
	"context"
	"spacewars/experiments/metrics"
	"spacewars/game"
)

type Agent interface {
	// FindMove returns a move for an idle ship, or false to pass this tick, and performance metrics (if collected)
	FindMove(ctx context.Context, state *game.GameState, id game.ShipID) (game.Move, bool, metrics.SearchMetric)
}
