package agent

import (
	"context"
	"spacewars/experiments/metrics"
	"spacewars/game"

	"golang.org/x/exp/rand"
)

type naiveAgent struct {
	rng *rand.Rand
}

// NewNaiveAgent returns a scripted opponent: when the laser is ready it fires at
// a random neighbouring cell half of the time, otherwise it sometimes launches a
// missile at a random cell and else moves to a random cell.
func NewNaiveAgent(seed uint64) Agent {
	return &naiveAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *naiveAgent) FindMove(_ context.Context, state *game.GameState, id game.ShipID) (game.Move, bool, metrics.SearchMetric) {
	if !state.MoveKindAllowed(id, game.MoveToCell) {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	roll := a.rng.Intn(100) + 1

	if roll <= 50 && state.MoveKindAllowed(id, game.MoveFireLaser) {
		if target, ok := a.randomNeighbor(state, id); ok {
			return game.Move{Kind: game.MoveFireLaser, Target: target}, true, metrics.SearchMetric{}
		}
	}

	target, ok := a.randomCell(state, id)
	if !ok {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	if roll <= 40 {
		left := state.MoveKindAllowed(id, game.MoveFireLeftMissile)
		right := state.MoveKindAllowed(id, game.MoveFireRightMissile)
		preferLeft := a.rng.Intn(2) == 0
		switch {
		case left && (preferLeft || !right):
			return game.Move{Kind: game.MoveFireLeftMissile, Target: target}, true, metrics.SearchMetric{}
		case right:
			return game.Move{Kind: game.MoveFireRightMissile, Target: target}, true, metrics.SearchMetric{}
		}
	}
	return game.Move{Kind: game.MoveToCell, Target: target}, true, metrics.SearchMetric{}
}

// randomNeighbor picks one of the on-grid cells adjacent to the ship.
func (a *naiveAgent) randomNeighbor(state *game.GameState, id game.ShipID) (game.Cell, bool) {
	w := state.World()
	var candidates []game.Cell
	for _, c := range w.CellFromPoint(state.Ship(id).Position).Neighbors() {
		if w.CellInWorld(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return game.Cell{}, false
	}
	return candidates[a.rng.Intn(len(candidates))], true
}

// randomCell picks a cell other than the ship's own.
func (a *naiveAgent) randomCell(state *game.GameState, id game.ShipID) (game.Cell, bool) {
	w := state.World()
	rows, cols := w.RowCount(), w.ColCount()
	own := w.CellFromPoint(state.Ship(id).Position)
	if rows*cols == 1 && w.CellInWorld(own) {
		return game.Cell{}, false
	}
	for {
		c := game.Cell{Row: a.rng.Intn(rows) + 1, Col: a.rng.Intn(cols) + 1}
		if c != own {
			return c, true
		}
	}
}
