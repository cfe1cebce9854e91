package searcher

import (
	"spacewars/game"

	"golang.org/x/exp/rand"
)

// randomMove draws a uniformly random legal move for a ship without building the
// move list.
func randomMove(state *game.GameState, id game.ShipID, rng *rand.Rand) (game.Move, bool) {
	n := state.LegalMoveCount(id)
	if n == 0 {
		return game.Move{}, false
	}
	return state.LegalMoveAt(id, rng.Intn(n))
}
