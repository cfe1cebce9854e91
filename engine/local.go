package engine

import (
	"context"
	"fmt"
	"spacewars/experiments/metrics"
	"spacewars/game"
	"spacewars/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *localEngine)

func WithMaxTicks(ticks int) Option {
	return func(e *localEngine) {
		if ticks > 0 {
			e.maxTicks = ticks
		}
	}
}

func WithObservers(observers ...Observer) Option {
	return func(e *localEngine) {
		e.observers = append(e.observers, observers...)
	}
}

type localEngine struct {
	state     *game.GameState
	agents    []agent.Agent
	order     []game.ShipID
	maxTicks  int
	observers []Observer
}

// LocalEngine drives a game in process. agents[i] decides for the ship with id i.
func LocalEngine(state *game.GameState, agents []agent.Agent, options ...Option) Engine {
	if len(agents) != state.NumShips() {
		panic(fmt.Sprintf("number of agents %d does not match number of ships %d", len(agents), state.NumShips()))
	}

	e := &localEngine{
		state:    state,
		agents:   agents,
		order:    append(state.Roster(game.Alien), state.Roster(game.Human)...), // Aliens decide first
		maxTicks: MaxTicks,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop: every idle ship is asked for a move, then the world
// advances one tick. Observers see the starting positions first, then every tick.
func (e *localEngine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("starting game with %d humans and %d aliens", e.state.LiveCount(game.Human), e.state.LiveCount(game.Alien))
	e.notify(Report{State: e.state}) // Initial placement

	for !e.state.IsOver() && e.state.Tick() < e.maxTicks {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("tick", e.state.Tick()).Msg("stopping game early")
			break
		}

		decisions := e.decide(ctx)
		for _, d := range decisions {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Tick:         e.state.Tick(),
				Ship:         d.Ship,
				SearchMetric: d.SearchMetric,
			})
		}
		gameMetric.Moves += len(decisions)

		e.state.NextWorldTick()
		e.notify(Report{State: e.state, Decisions: decisions})
	}

	winner := ""
	if team, ok := e.state.WinningTeam(); ok {
		winner = team.String()
	}
	if e.state.IsOver() {
		log.Info().Msgf("game over after %d ticks, winner: %q", e.state.Tick(), winner)
	} else {
		log.Info().Msgf("stopped after %d ticks with no winner yet", e.state.Tick())
	}

	gameMetric.Winner = winner
	gameMetric.Ticks = e.state.Tick()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, moveMetrics
}

// decide asks every live idle ship for a move and applies it to the live state.
func (e *localEngine) decide(ctx context.Context) []Decision {
	var decisions []Decision
	for _, id := range e.order {
		ship := e.state.Ship(id)
		if !ship.CanMove() {
			continue
		}

		move, ok, metric := e.agents[id].FindMove(ctx, e.state, id)
		decisions = append(decisions, Decision{Ship: ship.Name, Move: move, Passed: !ok, SearchMetric: metric})
		if !ok {
			log.Debug().Str("ship", ship.Name).Int("tick", e.state.Tick()).Msg("no move found, passing")
			continue
		}
		log.Trace().Str("ship", ship.Name).Int("tick", e.state.Tick()).Stringer("move", move).Msg("applying move")
		e.state.ApplyMove(id, move, false)
	}
	return decisions
}

func (e *localEngine) notify(report Report) {
	for _, o := range e.observers {
		if err := o.Observe(report); err != nil {
			log.Warn().Err(err).Int("tick", report.State.Tick()).Msg("observer failed")
		}
	}
}
