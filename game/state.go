package game

// GameState wraps a World with the global tick and the bookkeeping a search needs.
// It is not safe for concurrent use; searches clone it per rollout.
type GameState struct {
	world        *World
	tick         int
	rolloutStart int
}

// NewGame builds a world and places both rosters.
func NewGame(cfg WorldConfig, humans, aliens []ShipSpec) (*GameState, error) {
	w, err := NewWorld(cfg, humans, aliens)
	if err != nil {
		return nil, err
	}
	return &GameState{world: w}, nil
}

// World exposes the underlying world for read-only consumers such as replays.
func (gs *GameState) World() *World {
	return gs.world
}

// Tick returns the number of world ticks computed so far.
func (gs *GameState) Tick() int {
	return gs.tick
}

// RolloutStart is the tick recorded by the last simulated move.
func (gs *GameState) RolloutStart() int {
	return gs.rolloutStart
}

// Clone returns an independent copy. Mutating either side never affects the other.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.world = gs.world.Clone()
	return &c
}

// NextWorldTick advances the global tick and computes one tick of physics.
func (gs *GameState) NextWorldTick() {
	gs.tick++
	gs.world.Step(gs.tick)
}

// IsOver reports whether a roster has been wiped out.
func (gs *GameState) IsOver() bool {
	return gs.world.IsOver()
}

// WinningTeam returns the team with ships left once the game is over.
func (gs *GameState) WinningTeam() (Team, bool) {
	return gs.world.WinningTeam()
}

// LiveCount returns the number of live ships in a team.
func (gs *GameState) LiveCount(team Team) int {
	return gs.world.LiveCount(team)
}

// NumShips returns the size of both rosters together. Ship ids run from 0 to NumShips-1.
func (gs *GameState) NumShips() int {
	return gs.world.NumShips()
}

// Ship returns the ship with the given id.
func (gs *GameState) Ship(id ShipID) *Ship {
	return gs.world.Ship(id)
}

// ShipByName looks a ship up by name.
func (gs *GameState) ShipByName(name string) (*Ship, bool) {
	return gs.world.ShipByName(name)
}

// Ships returns every ship in id order, humans first.
func (gs *GameState) Ships() []*Ship {
	ships := make([]*Ship, gs.world.NumShips())
	for i := range ships {
		ships[i] = gs.world.Ship(ShipID(i))
	}
	return ships
}

// Roster returns a team's ship ids in placement order.
func (gs *GameState) Roster(team Team) []ShipID {
	return gs.world.Roster(team)
}

// Actions returns the events of the last computed tick.
func (gs *GameState) Actions() []Action {
	return gs.world.Actions()
}

// RewardSince sums a ship's rewards registered at or after tick.
func (gs *GameState) RewardSince(id ShipID, tick int) float64 {
	return gs.world.Ship(id).RewardsSince(tick)
}

// ApplyMove queues the commands of a move for a ship. Moves for dead or busy ships
// and moves the legal move filter would reject are ignored. A simulated move marks
// the start of a rollout.
func (gs *GameState) ApplyMove(id ShipID, move Move, simulation bool) {
	if simulation {
		gs.rolloutStart = gs.tick
	}
	gs.world.applyMove(gs.world.Ship(id), move)
}

// LegalMoves enumerates the moves a ship may take this tick: moves to every cell,
// then left missile, right missile and laser shots at every cell, each category
// in row-major order and skipping the ship's own cell.
func (gs *GameState) LegalMoves(id ShipID) []Move {
	n := gs.LegalMoveCount(id)
	if n == 0 {
		return nil
	}
	moves := make([]Move, n)
	for k := range moves {
		moves[k], _ = gs.LegalMoveAt(id, k)
	}
	return moves
}

// LegalMoveCount returns len(LegalMoves(id)) without building the slice.
func (gs *GameState) LegalMoveCount(id ShipID) int {
	s := gs.world.Ship(id)
	if s.Dead {
		return 0
	}
	per := gs.targetCount(s)
	count := 0
	for kind := MoveKind(0); kind < numMoveKinds; kind++ {
		if gs.moveKindAllowed(s, kind) {
			count += per
		}
	}
	return count
}

// LegalMoveAt returns the k-th element of LegalMoves(id) without allocating.
func (gs *GameState) LegalMoveAt(id ShipID, k int) (Move, bool) {
	s := gs.world.Ship(id)
	if s.Dead || k < 0 {
		return Move{}, false
	}
	per := gs.targetCount(s)
	own := gs.ownCellIndex(s)
	for kind := MoveKind(0); kind < numMoveKinds; kind++ {
		if !gs.moveKindAllowed(s, kind) {
			continue
		}
		if k >= per {
			k -= per
			continue
		}
		idx := k
		if own >= 0 && idx >= own {
			idx++
		}
		cols := gs.world.ColCount()
		return Move{Kind: kind, Target: Cell{Row: idx/cols + 1, Col: idx%cols + 1}}, true
	}
	return Move{}, false
}

// MoveKindAllowed reports whether a live ship may take moves of the given kind
// this tick.
func (gs *GameState) MoveKindAllowed(id ShipID, kind MoveKind) bool {
	s := gs.world.Ship(id)
	return !s.Dead && gs.moveKindAllowed(s, kind)
}

func (gs *GameState) moveKindAllowed(s *Ship, kind MoveKind) bool {
	w := gs.world
	switch kind {
	case MoveFireLeftMissile:
		return s.canFireMissile(true, gs.tick, w.rules)
	case MoveFireRightMissile:
		return s.canFireMissile(false, gs.tick, w.rules)
	case MoveFireLaser:
		return s.canFireLaser(gs.tick, w.rules)
	}
	return true
}

// targetCount is the number of cells a ship may target.
func (gs *GameState) targetCount(s *Ship) int {
	cells := gs.world.RowCount() * gs.world.ColCount()
	if gs.ownCellIndex(s) >= 0 {
		cells--
	}
	return cells
}

// ownCellIndex is the row-major index of the ship's cell, or -1 off the grid.
func (gs *GameState) ownCellIndex(s *Ship) int {
	c := gs.world.CellFromPoint(s.Position)
	if !gs.world.CellInWorld(c) {
		return -1
	}
	return (c.Row-1)*gs.world.ColCount() + (c.Col - 1)
}
