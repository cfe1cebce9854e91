package searcher

import "spacewars/game"

// candidate holds the rollout statistics of one root move.
type candidate struct {
	move   game.Move
	visits int
	score  float64
}

func (c candidate) average() float64 {
	if c.visits == 0 {
		return 0
	}
	return c.score / float64(c.visits)
}
