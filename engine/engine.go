package engine

import (
	"context"
	"spacewars/experiments/metrics"
	"spacewars/game"
)

const MaxTicks = 1000

type Engine interface {
	// Run plays a game till one roster is wiped out, the tick limit is reached or ctx is done
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Decision is one agent answer during a tick.
type Decision struct {
	Ship   string
	Move   game.Move
	Passed bool
	metrics.SearchMetric
}

// Report is handed to observers once before the first tick, with no decisions,
// and after every computed tick.
type Report struct {
	State     *game.GameState
	Decisions []Decision
}

// Observer is notified of the initial state and after every tick, e.g. to record a replay.
type Observer interface {
	Observe(report Report) error
}
