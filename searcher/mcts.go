package searcher

import (
	"context"
	"spacewars/experiments/metrics"
	"spacewars/game"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS evaluates the legal moves of one ship by random rollouts on clones of the
// live state. Simulate must not be called concurrently on the same MCTS.
type MCTS struct {
	goroutines  int
	duration    time.Duration
	episodes    int
	cutoff      int
	temperature float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithTemperature(temperature float64) Option {
	return func(m *MCTS) {
		if temperature >= 0 {
			m.temperature = temperature
		}
	}
}

// WithSeed fixes the random source. Single-goroutine searches with the same seed
// are exactly reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  goroutines,
		cutoff:      DefaultCutoff,
		temperature: DefaultTemperature,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines < 1 {
		m.goroutines = 1
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches for the best move of ship id. It returns false when no
// candidate could be evaluated, in which case the ship passes this tick.
// Cancelling ctx or running out of time stops the search with the best move so far.
func (m *MCTS) Simulate(ctx context.Context, state *game.GameState, id game.ShipID) (game.Move, bool, metrics.SearchMetric) {
	root, metric := m.search(ctx, state, id)
	move, ok := root.findBestMove(m.rng)
	return move, ok, metric
}

// Policy runs the same search as Simulate and returns the visit count of every
// evaluated move.
func (m *MCTS) Policy(ctx context.Context, state *game.GameState, id game.ShipID) (map[game.Move]float64, metrics.SearchMetric) {
	root, metric := m.search(ctx, state, id)
	return root.Policy(), metric
}

func (m *MCTS) search(ctx context.Context, state *game.GameState, id game.ShipID) (*decision, metrics.SearchMetric) {
	root := newDecision(state.LegalMoves(id), m.temperature)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if len(root.candidates) > 0 {
		if m.duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.duration)
			defer cancel()
		}
		m.iterate(ctx, root, state, id)
	}
	metric := m.metrics.Complete()
	metric.Candidates = len(root.candidates)
	metric.Visited = root.visited()
	return root, metric
}

// iterate runs episodes on every goroutine until the episode budget is spent or
// ctx is done. Each goroutine owns a random source drawn from the search's.
func (m *MCTS) iterate(ctx context.Context, root *decision, state *game.GameState, id game.ShipID) {
	var task chan any
	if m.episodes > 0 {
		task = make(chan any, m.episodes)
		for i := 0; i < m.episodes; i++ {
			task <- nil
		}
		close(task)
	}

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.rng.Uint64()))
		wg.Add(1)
		go func() {
			defer wg.Done()

			for ctx.Err() == nil {
				if task != nil {
					if _, ok := <-task; !ok {
						return
					}
				}
				m.simulate(root, state, id, rng)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) simulate(root *decision, state *game.GameState, id game.ShipID, rng *rand.Rand) {
	ith := root.selects(rng)
	clone := state.Clone()
	clone.ApplyMove(id, root.candidates[ith].move, true)
	score := rollout(clone, id, m.cutoff, rng, m.metrics)
	root.backup(ith, score)
}

// rollout plays random moves for every other idle ship until game over or cutoff
// ticks, then scores the acting ship's rewards since the rollout started.
func rollout(state *game.GameState, id game.ShipID, cutoff int, rng *rand.Rand, metrics metrics.Collector) float64 {
	start := state.RolloutStart()
	ships := state.NumShips()
	for depth := 0; depth < cutoff && !state.IsOver(); depth++ {
		for other := game.ShipID(0); int(other) < ships; other++ {
			if other == id || !state.Ship(other).CanMove() {
				continue
			}
			if move, ok := randomMove(state, other, rng); ok { // Random rollout policy
				state.ApplyMove(other, move, false)
			}
		}
		state.NextWorldTick()
	}

	if state.IsOver() { // Game over before cutoff
		metrics.AddFullPlayout()
	}
	return state.RewardSince(id, start)
}
