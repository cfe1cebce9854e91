package searcher

import (
	"math"
	"spacewars/game"
	"sync"

	"golang.org/x/exp/rand"
)

// decision is the root of a flat search: one candidate per legal move of the
// acting ship.
type decision struct {
	sync.Mutex
	temperature float64
	candidates  []candidate
	total       int
}

func newDecision(moves []game.Move, temperature float64) *decision {
	candidates := make([]candidate, len(moves))
	for i, move := range moves {
		candidates[i].move = move
	}
	return &decision{
		temperature: temperature,
		candidates:  candidates,
	}
}

// selects picks a candidate by UCT and counts the visit up front so concurrent
// workers spread over the candidates.
func (d *decision) selects(rng *rand.Rand) int {
	d.Lock()
	defer d.Unlock()

	ith := d.pickChild(rng)
	d.candidates[ith].visits++
	d.total++
	return ith
}

// pickChild returns the index with the highest UCT score. Ties are broken
// uniformly at random.
func (d *decision) pickChild(rng *rand.Rand) int {
	policy := newUCT(d.temperature, float64(d.total))

	maxIndex := -1
	maxScore := math.Inf(-1)
	ties := 0
	for i, c := range d.candidates {
		score := policy.evaluate(c.score, float64(c.visits))
		switch {
		case score > maxScore:
			maxScore = score
			maxIndex = i
			ties = 1
		case score == maxScore:
			ties++
			if rng.Intn(ties) == 0 {
				maxIndex = i
			}
		}
	}
	return maxIndex
}

func (d *decision) backup(ith int, score float64) {
	d.Lock()
	defer d.Unlock()

	d.candidates[ith].score += score
}

// findBestMove returns the visited candidate with the highest average score,
// breaking ties uniformly at random.
func (d *decision) findBestMove(rng *rand.Rand) (game.Move, bool) {
	d.Lock()
	defer d.Unlock()

	maxIndex := -1
	maxAverage := math.Inf(-1)
	ties := 0
	for i, c := range d.candidates {
		if c.visits == 0 {
			continue
		}
		avg := c.average()
		switch {
		case avg > maxAverage:
			maxAverage = avg
			maxIndex = i
			ties = 1
		case avg == maxAverage:
			ties++
			if rng.Intn(ties) == 0 {
				maxIndex = i
			}
		}
	}
	if maxIndex < 0 {
		return game.Move{}, false
	}
	return d.candidates[maxIndex].move, true
}

// Policy maps every visited move to its visit count.
func (d *decision) Policy() map[game.Move]float64 {
	d.Lock()
	defer d.Unlock()

	policy := make(map[game.Move]float64)
	for _, c := range d.candidates {
		if c.visits > 0 {
			policy[c.move] = float64(c.visits)
		}
	}
	return policy
}

func (d *decision) visited() int {
	d.Lock()
	defer d.Unlock()

	count := 0
	for _, c := range d.candidates {
		if c.visits > 0 {
			count++
		}
	}
	return count
}
